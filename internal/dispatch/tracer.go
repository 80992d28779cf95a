package dispatch

import "time"

// Dispatch outcomes recorded in trace events.
const (
	OutcomeOK           = "ok"
	OutcomeNoApplicable = "no_applicable"
	OutcomeAmbiguous    = "ambiguous"
	OutcomeExhausted    = "exhausted"
	OutcomeBodyError    = "body_error"
)

// Event describes one completed dispatch attempt.
type Event struct {
	Routine     string
	ArgTypes    []string
	Chosen      string // winning candidate signature, empty on failure
	CandidateID string // winning candidate ID, empty on failure
	Outcome     string
	Duration    time.Duration
}

// Tracer observes dispatch attempts. Implementations must tolerate
// concurrent Record calls.
type Tracer interface {
	Record(ev Event)
}
