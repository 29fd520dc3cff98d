package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed set of goroutines. Tasks are
// best-effort side work (event logging, annotations); a panicking task is
// logged and the worker keeps going.
type WorkerPool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func NewWorkerPool(parent context.Context, size int, log *zap.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:  make(chan Task, size),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		taskCtx, cancel := context.WithTimeout(p.ctx, 2*time.Second)
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.log.Error("task panicked", zap.Any("panic", r))
				}
			}()
			task(taskCtx)
		}()
		cancel()
	}
}

// Submit enqueues a task; it is dropped once the pool is shutting down.
func (p *WorkerPool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
		return
	case p.tasks <- task:
	}
}

// Shutdown stops intake and waits for in-flight tasks to finish, so a
// batch run can flush pending events before exiting.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.tasks)
	p.wg.Wait()
}
