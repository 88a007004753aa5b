package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// Dispatcher runs approval finalizers outside the HTTP request.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// AsyncDispatcher runs each job on its own goroutine with a context that
// keeps the request's values but not its cancellation.
type AsyncDispatcher struct {
	wg sync.WaitGroup
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, name string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		runJob(ctx, name, fn)
	}()
}

// Wait blocks until every dispatched job returns or ctx is done.
func (d *AsyncDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncDispatcher runs jobs inline.
type SyncDispatcher struct{}

func (SyncDispatcher) Dispatch(ctx context.Context, name string, fn func(ctx context.Context) error) {
	runJob(ctx, name, fn)
}

func runJob(ctx context.Context, name string, fn func(ctx context.Context) error) {
	log := slogx.FromContext(ctx).With(slog.String("job", name))
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "job panicked", slog.String("panic", fmt.Sprint(r)))
		}
	}()
	if err := fn(ctx); err != nil {
		log.ErrorContext(ctx, "job failed", slog.Any("error", err))
		return
	}
	log.DebugContext(ctx, "job finished")
}
