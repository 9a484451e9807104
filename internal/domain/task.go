package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxTitleLen bounds task titles; anything longer is rejected before a write.
const MaxTitleLen = 500

type Task struct {
	ID           string
	ProjectID    string
	StatusID     string
	Title        string
	Description  string
	AssigneeID   *string
	Priority     Priority
	StartDate    *time.Time
	DueDate      *time.Time
	SortRank     float64
	ParentTaskID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateTitle checks the non-empty / bounded-length title invariant.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be empty: %w", ErrValidation)
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title exceeds %d characters: %w", MaxTitleLen, ErrValidation)
	}
	return nil
}

// IsSubtask reports whether the task has a parent.
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != nil
}

// DatesOrdered reports whether due date is on or after start date.
// A false result is a soft warning for the caller, never a core failure.
func (t *Task) DatesOrdered() bool {
	if t.StartDate == nil || t.DueDate == nil {
		return true
	}
	return !t.DueDate.Before(*t.StartDate)
}

// TaskPatch is an explicit field-update set for Update. Only non-nil
// pointers (and set Clear* flags) are applied; status and rank are
// excluded on purpose and move through ChangeStatus/Reorder.
type TaskPatch struct {
	Title          *string
	Description    *string
	Priority       *Priority
	AssigneeID     *string
	ClearAssignee  bool
	StartDate      *time.Time
	ClearStartDate bool
	DueDate        *time.Time
	ClearDueDate   bool
}

// Empty reports whether the patch touches no fields.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.AssigneeID == nil && !p.ClearAssignee &&
		p.StartDate == nil && !p.ClearStartDate &&
		p.DueDate == nil && !p.ClearDueDate
}

// Apply copies the set fields of the patch onto the task.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearAssignee {
		t.AssigneeID = nil
	} else if p.AssigneeID != nil {
		t.AssigneeID = p.AssigneeID
	}
	if p.ClearStartDate {
		t.StartDate = nil
	} else if p.StartDate != nil {
		t.StartDate = p.StartDate
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
}
