package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when resume composition fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate resume document")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyInput is returned when an operation is invoked without any usable input text
	ErrEmptyInput = errors.New("input text cannot be empty")
)
