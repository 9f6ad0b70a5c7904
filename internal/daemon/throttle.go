package daemon

import (
	"context"

	"golang.org/x/time/rate"
)

// NewLimiter creates a limiter allowing rps tasks per second with the given burst.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

type throttled struct {
	Adapter
	limiter *rate.Limiter
}

// Throttle wraps a so every task first waits on limiter. A wait that is cancelled or would outlast
// the context deadline fails the task with [ConnectionError].
func Throttle(a Adapter, limiter *rate.Limiter) Adapter {
	return &throttled{Adapter: a, limiter: limiter}
}

func (t *throttled) ExecuteTask(ctx context.Context, task Task) Result {
	if task == nil {
		return t.Adapter.ExecuteTask(ctx, task)
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return Fail(task, NewError(ConnectionError, "%s throttled: %v", task.Method(), err))
	}
	return t.Adapter.ExecuteTask(ctx, task)
}
