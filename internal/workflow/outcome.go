package workflow

// TaskID uniquely identifies one producer or the consumer within a run.
// The set of identifiers is fixed when the run is assembled.
type TaskID string

// OutcomeStatus represents the terminal state of a task
type OutcomeStatus string

// Possible outcome status values
const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// NoInputMessage is the failure message recorded for a producer that was
// skipped because its required input was absent. The producer still reaches a
// terminal state so the join barrier never waits on it.
const NoInputMessage = "no input provided"

// Outcome is the immutable terminal result of one task: a success payload or
// a failure message. Once recorded in a RunState it is never overwritten.
type Outcome struct {
	Status  OutcomeStatus
	Payload string
	Message string
}

// Succeed returns a success outcome carrying the given payload.
func Succeed(payload string) Outcome {
	return Outcome{Status: OutcomeSuccess, Payload: payload}
}

// Fail returns a failure outcome carrying the given message.
func Fail(message string) Outcome {
	return Outcome{Status: OutcomeFailure, Message: message}
}

// Succeeded reports whether the outcome is a success.
func (o Outcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}
