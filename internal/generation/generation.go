package generation

import "context"

// ComposeInput carries everything the composer needs to write the final
// resume document. Collected fields hold what the producer tasks gathered;
// producers that failed or were skipped appear as explicit unavailability
// markers, never as silently empty data.
type ComposeInput struct {
	// GitHubData is the summarized repository metadata, or a failure marker.
	GitHubData string

	// PortfolioData is the scraped portfolio text, or a failure marker.
	PortfolioData string

	// JDKeywords is the extracted keyword list, or a failure marker.
	JDKeywords string

	// OldResumeText is caller-supplied prior resume text, possibly empty.
	OldResumeText string

	// UserAdditions is caller-supplied free-form material to work in.
	UserAdditions string

	// UserFeedback is caller-supplied revision guidance.
	UserFeedback string
}

// Composer creates the structured resume document from the collected inputs.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Composer interface {
	// Compose returns the resume as a JSON document matching
	// domain.Resume, or an error if composition fails (see errors.go for
	// the specific kinds).
	Compose(ctx context.Context, input ComposeInput) (string, error)
}

// KeywordExtractor derives ATS-oriented keywords from a job description.
type KeywordExtractor interface {
	// ExtractKeywords returns a normalized, comma-separated keyword list
	// drawn from the job description text.
	ExtractKeywords(ctx context.Context, jobDescription string) (string, error)
}
