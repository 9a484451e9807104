package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/trellis/internal/domain"
)

// Publisher receives change events after their transaction has committed.
// Events for a rolled-back transaction are never published.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// NoopPublisher discards all events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) {}

type logPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher writes change events to the provided writer as structured
// log lines.
func NewLogPublisher(w io.Writer) Publisher {
	if w == nil {
		return NoopPublisher{}
	}
	return &logPublisher{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (p *logPublisher) Publish(ctx context.Context, event domain.Event) {
	p.logger.InfoContext(ctx, "task_event",
		"kind", string(event.Kind),
		"project_id", event.ProjectID,
		"task_id", event.TaskID,
	)
}

func publisherOrNoop(p Publisher) Publisher {
	if p == nil {
		return NoopPublisher{}
	}
	return p
}

// publishAll delivers a batch of events collected during a committed
// transaction, in the order they were recorded.
func publishAll(ctx context.Context, p Publisher, events []domain.Event) {
	for _, e := range events {
		p.Publish(ctx, e)
	}
}
