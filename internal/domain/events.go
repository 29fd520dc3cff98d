package domain

import "context"

const (
	EventRotationCompleted = "rotation.completed"
	EventRotationFailed    = "rotation.failed"
)

type Event struct {
	Type    string
	Payload map[string]any
}

// EventBus delivers domain events out of band; implementations must not
// block the publishing run.
type EventBus interface {
	Publish(ctx context.Context, e Event)
}
