package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Fix login"))
	assert.NoError(t, ValidateTitle(strings.Repeat("x", MaxTitleLen)))

	assert.ErrorIs(t, ValidateTitle(""), ErrValidation)
	assert.ErrorIs(t, ValidateTitle("   \t"), ErrValidation)
	assert.ErrorIs(t, ValidateTitle(strings.Repeat("x", MaxTitleLen+1)), ErrValidation)
}

func TestDatesOrdered(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, (&Task{}).DatesOrdered(), "no dates set")
	assert.True(t, (&Task{StartDate: &start}).DatesOrdered(), "only start")
	assert.True(t, (&Task{DueDate: &due}).DatesOrdered(), "only due")
	assert.True(t, (&Task{StartDate: &start, DueDate: &due}).DatesOrdered())
	assert.True(t, (&Task{StartDate: &start, DueDate: &start}).DatesOrdered(), "same day")
	assert.False(t, (&Task{StartDate: &due, DueDate: &start}).DatesOrdered())
}

func TestTaskPatch_Empty(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())

	title := "x"
	assert.False(t, TaskPatch{Title: &title}.Empty())
	assert.False(t, TaskPatch{ClearAssignee: true}.Empty())
	assert.False(t, TaskPatch{ClearDueDate: true}.Empty())
}

func TestTaskPatch_Apply(t *testing.T) {
	ana := "ana"
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{
		Title:       "Old",
		Description: "old desc",
		Priority:    PriorityLow,
		AssigneeID:  &ana,
		DueDate:     &due,
	}

	title := "New"
	prio := PriorityUrgent
	TaskPatch{Title: &title, Priority: &prio}.Apply(task)
	assert.Equal(t, "New", task.Title)
	assert.Equal(t, PriorityUrgent, task.Priority)
	assert.Equal(t, "old desc", task.Description, "unset field untouched")
	assert.Equal(t, &ana, task.AssigneeID)

	TaskPatch{ClearAssignee: true, ClearDueDate: true}.Apply(task)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.DueDate)
}

func TestTaskPatch_ClearWinsOverSet(t *testing.T) {
	ana := "ana"
	task := &Task{AssigneeID: &ana}

	bob := "bob"
	TaskPatch{AssigneeID: &bob, ClearAssignee: true}.Apply(task)
	assert.Nil(t, task.AssigneeID)
}

func TestIsSubtask(t *testing.T) {
	parent := "parent-id"
	assert.False(t, (&Task{}).IsSubtask())
	assert.True(t, (&Task{ParentTaskID: &parent}).IsSubtask())
}
