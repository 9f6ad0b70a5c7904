package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestThrottle(t *testing.T) {
	t.Run("passes through within limit", func(t *testing.T) {
		a := Throttle(newTestDummy(t), rate.NewLimiter(rate.Inf, 1))
		for range 5 {
			if res := a.ExecuteTask(context.Background(), NewRetrieveTask()); !res.Success() {
				t.Fatalf("expected success, got %v", Err(res))
			}
		}
	})

	t.Run("exceeded wait fails with connection error", func(t *testing.T) {
		a := Throttle(newTestDummy(t), NewLimiter(1.0/3600, 1))

		if res := a.ExecuteTask(context.Background(), NewRetrieveTask()); !res.Success() {
			t.Fatalf("first task should use the burst, got %v", Err(res))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		res := a.ExecuteTask(ctx, NewRetrieveTask())
		if !errors.Is(Err(res), ErrConnectionError) {
			t.Errorf("expected ConnectionError, got %v", Err(res))
		}
	})

	t.Run("NewLimiter clamps burst", func(t *testing.T) {
		if l := NewLimiter(5, 0); l.Burst() != 1 {
			t.Errorf("expected burst 1, got %d", l.Burst())
		}
	})
}
