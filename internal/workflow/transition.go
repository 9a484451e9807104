// Package workflow holds the status column rules for task movement.
package workflow

import (
	"fmt"

	"github.com/alexanderramin/trellis/internal/domain"
)

// ValidateTransition checks that a task may move to the given status within
// its project. Statuses must be the full column set of the task's project.
// Any column-to-column move is allowed, including re-entering a terminal
// column; the only failure is a status that does not belong to the project.
func ValidateTransition(statuses []domain.TaskStatus, toStatusID string) error {
	for _, s := range statuses {
		if s.ID == toStatusID {
			return nil
		}
	}
	return fmt.Errorf("status %s: %w", toStatusID, domain.ErrUnknownStatus)
}

// FindStatus returns the status with the given ID from the project's column
// set, or an ErrUnknownStatus error.
func FindStatus(statuses []domain.TaskStatus, statusID string) (domain.TaskStatus, error) {
	for _, s := range statuses {
		if s.ID == statusID {
			return s, nil
		}
	}
	return domain.TaskStatus{}, fmt.Errorf("status %s: %w", statusID, domain.ErrUnknownStatus)
}
