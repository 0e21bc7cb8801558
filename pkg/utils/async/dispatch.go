package async

import (
	"context"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/semaphore"

	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

// Handler is a job run in the background
type Handler = func(ctx context.Context) error

// Dispatch executes a handler function asynchronously with proper context and panic recovery
//
// Parameters:
//   - ctx: Original context (values will be preserved, but cancellation won't affect the async handler)
//   - handler: Function to execute asynchronously
//
// Behavior:
//   - Creates a new background context with preserved logger
//   - Executes handler in a new goroutine
//   - Recovers from panics and logs them
//   - Logs errors returned by handler and reports them to Sentry
func Dispatch(ctx context.Context, handler Handler) {
	newCtx := newBackgroundContext(ctx)

	go run(newCtx, handler)
}

func run(ctx context.Context, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logger := ctxlog.From(ctx)
			logger.Error("panic in async handler",
				"recover", r,
				"stack", string(stack))
			report(goerr.New("panic in async handler", goerr.V("recover", r)))
		}
	}()

	if err := handler(ctx); err != nil {
		logger := ctxlog.From(ctx)
		logger.Error("error in async handler", "error", err)
		report(err)
	}
}

// report sends err to Sentry. It is a no-op while Sentry is not initialized.
func report(err error) {
	hub := sentry.CurrentHub().Clone()
	hub.CaptureException(err)
}

// Pool runs dispatched handlers with at most size of them in flight. Callers
// never block: handlers wait for a slot in their own goroutine.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a Pool. size less than 1 is treated as 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Dispatch schedules handler on the pool
func (p *Pool) Dispatch(ctx context.Context, handler Handler) {
	Dispatch(ctx, func(ctx context.Context) error {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return goerr.Wrap(err, "failed to acquire worker slot")
		}
		defer p.sem.Release(1)

		return handler(ctx)
	})
}

// newBackgroundContext creates a new background context preserving important values
//
// Preserved values:
//   - ctxlog logger
//
// Returns: New context.Background() with preserved values
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	return newCtx
}
