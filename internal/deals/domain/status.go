package domain

import "fmt"

// Status is the canonical deal status. Staging deals are always in_progress;
// promotion forces completed.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// legacy status vocabulary accepted at the boundary and translated to the
// canonical pair. Earlier API revisions sent prospect/negotiating/closed.
var legacyStatuses = map[string]Status{
	"in_progress": StatusInProgress,
	"completed":   StatusCompleted,
	"prospect":    StatusInProgress,
	"negotiating": StatusInProgress,
	"closed":      StatusCompleted,
}

// NormalizeStatus translates an incoming status string to a canonical Status.
// An empty string defaults to in_progress, matching the old 'prospect'
// default of the create-deal form.
func NormalizeStatus(s string) (Status, error) {
	if s == "" {
		return StatusInProgress, nil
	}
	st, ok := legacyStatuses[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}
