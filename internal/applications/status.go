package applications

import "fmt"

// Status is an application's position in the hiring pipeline.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusReviewed  Status = "reviewed"
	StatusInterview Status = "interview"
	StatusOffered   Status = "offered"
	StatusRejected  Status = "rejected"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusApplied, StatusReviewed, StatusInterview, StatusOffered, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown application status: %q", raw)
}

// forwardTransitions lists the allowed next step for each pipeline stage.
// Rejection is reachable from any non-terminal stage and is terminal.
var forwardTransitions = map[Status]Status{
	StatusApplied:   StatusReviewed,
	StatusReviewed:  StatusInterview,
	StatusInterview: StatusOffered,
}

func IsTerminal(s Status) bool {
	return s == StatusRejected
}

// IsTransitionAllowed reports whether an application may move from one
// status to another. Only single forward steps and rejection are allowed;
// nothing leaves a terminal status.
func IsTransitionAllowed(from, to Status) bool {
	if IsTerminal(from) {
		return false
	}

	if to == StatusRejected {
		return true
	}

	return forwardTransitions[from] == to
}
