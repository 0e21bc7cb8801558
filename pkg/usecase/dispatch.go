package usecase

import (
	"context"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/utils/async"
)

type dispatchFunc func(ctx context.Context, handler func(ctx context.Context) error)

func (f dispatchFunc) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	f(ctx, handler)
}

// detached runs every job in its own goroutine, detached from the caller's
// cancellation
var detached interfaces.Dispatcher = dispatchFunc(async.Dispatch)
