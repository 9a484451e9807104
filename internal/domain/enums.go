package domain

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityNone: true, PriorityLow: true, PriorityMedium: true,
	PriorityHigh: true, PriorityUrgent: true,
}

type EventKind string

const (
	EventTaskCreated       EventKind = "task_created"
	EventTaskUpdated       EventKind = "task_updated"
	EventTaskMoved         EventKind = "task_moved"
	EventTaskReordered     EventKind = "task_reordered"
	EventTaskDeleted       EventKind = "task_deleted"
	EventDependencyAdded   EventKind = "dependency_added"
	EventDependencyRemoved EventKind = "dependency_removed"
	EventLabelAttached     EventKind = "label_attached"
	EventLabelDetached     EventKind = "label_detached"
)

type BulkOperation string

const (
	BulkMove   BulkOperation = "move"
	BulkDelete BulkOperation = "delete"
)
