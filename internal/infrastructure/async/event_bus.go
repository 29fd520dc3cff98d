package async

import (
	"context"

	"go.uber.org/zap"

	"reviewrota/internal/domain"
)

// AsyncEventBus logs rotation events off the hot path. The pool is small:
// a rotation run publishes a handful of events at most.
type AsyncEventBus struct {
	pool *WorkerPool
	log  *zap.Logger
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		pool: NewWorkerPool(ctx, poolSize, log),
		log:  log,
	}
}

func (b *AsyncEventBus) Publish(_ context.Context, e domain.Event) {
	b.pool.Submit(func(_ context.Context) {
		b.log.Info("rotation_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
	})
}

// Close flushes queued events; call before process exit.
func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
