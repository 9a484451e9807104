package domain

import "time"

type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label is a per-project tag attachable to tasks.
type Label struct {
	ID        string
	ProjectID string
	Name      string
	Color     string
}
