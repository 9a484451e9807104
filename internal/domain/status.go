package domain

// TaskStatus is a project-configured column. Statuses are owned by project
// settings; the core only checks existence and membership.
type TaskStatus struct {
	ID         string
	ProjectID  string
	Name       string
	Position   int
	IsTerminal bool
}
