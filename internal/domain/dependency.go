package domain

import "time"

// Dependency is a directed edge: BlockedTaskID cannot be considered done
// until BlockingTaskID is. Edges are created and removed, never updated.
type Dependency struct {
	ID             string
	BlockedTaskID  string
	BlockingTaskID string
	CreatedAt      time.Time
}
