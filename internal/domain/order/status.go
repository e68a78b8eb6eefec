package order

import "github.com/coderr-app/marketplace-api/internal/httperr"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func Valid(s Status) bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusInProgress
}

// CanTransition validates a status change. Orders start in_progress and
// may move to completed or cancelled; both are terminal.
func CanTransition(from, to Status) error {
	if !Valid(to) {
		return httperr.ErrBusinessMsg("invalid_status", "status must be one of in_progress, completed, cancelled")
	}
	if from == to {
		return nil
	}
	if from != StatusInProgress {
		return httperr.ErrBusinessMsg("invalid_status_transition", "orders cannot leave a terminal status")
	}
	return nil
}
