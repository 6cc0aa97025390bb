package models

// EventKind tags an entry in the evaluation event stream
type EventKind string

const (
	EventStatus           EventKind = "status"
	EventDuplicateWarning EventKind = "duplicate-warning"
	EventDuplicateSummary EventKind = "duplicate-summary"
	EventNarrative        EventKind = "narrative"
)

// DuplicateWarning is the payload of a duplicate-warning event
type DuplicateWarning struct {
	Duplicates             []DuplicateFinding `json:"duplicates"`
	RequiresAcknowledgment bool               `json:"requiresAcknowledgment"`
}

// Event is one record of the evaluation stream.
// Payload is a string for status and narrative events,
// *DuplicateWarning or *EvaluationSummary otherwise.
type Event struct {
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload"`
}

// Text returns the payload of a text event, or "" for structured events
func (e Event) Text() string {
	s, _ := e.Payload.(string)
	return s
}
