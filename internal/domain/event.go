package domain

// Event is the change notification emitted once per committed mutation,
// consumed by the change broadcaster for fan-out to connected clients.
type Event struct {
	ProjectID string
	TaskID    string
	Kind      EventKind
}
