package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatuses is the canonical set of accepted status strings.
var ValidStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true,
}

// DeriveStatus maps actual dates to a lifecycle status. Completion wins over
// start; an entity with neither date is pending.
func DeriveStatus(actualStart, actualEnd *time.Time) Status {
	switch {
	case actualEnd != nil:
		return StatusCompleted
	case actualStart != nil:
		return StatusInProgress
	default:
		return StatusPending
	}
}
