package tasks

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
	tu "github.com/desertthunder/tdx/internal/testing"
)

func pauseTasks(hashes ...string) []daemon.Task {
	out := make([]daemon.Task, len(hashes))
	for i, h := range hashes {
		out[i] = daemon.NewPauseTask(models.Torrent{UniqueID: h, Name: "torrent " + h})
	}
	return out
}

func TestRunBatch(t *testing.T) {
	t.Run("executes every task in order", func(t *testing.T) {
		mock := tu.NewMockAdapter(models.DaemonDummy, nil)
		tasks := pauseTasks("a", "b", "c", "d")

		result, err := RunBatch(context.Background(), mock, tasks, BatchOpts{NumWorkers: 2, RateLimit: 1000}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 4 || result.Succeeded != 4 || result.Failed != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}
		for i, res := range result.Results {
			if res.Task().ID() != tasks[i].ID() {
				t.Errorf("result %d belongs to task %s, want %s", i, res.Task().ID(), tasks[i].ID())
			}
		}
		if got := mock.CallCount(daemon.MethodPause); got != 4 {
			t.Errorf("expected 4 pause calls, got %d", got)
		}
	})

	t.Run("partial failures do not abort the batch", func(t *testing.T) {
		mock := tu.NewMockAdapter(models.DaemonDummy, nil)
		mock.ExecuteFunc = func(_ context.Context, task daemon.Task) daemon.Result {
			if task.Target().UniqueID == "b" {
				return daemon.Fail(task, daemon.NewError(daemon.UnexpectedResponse, "torrent b not found"))
			}
			return daemon.Succeed(task)
		}

		result, err := RunBatch(context.Background(), mock, pauseTasks("a", "b", "c"), BatchOpts{RateLimit: 1000}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Succeeded != 2 || result.Failed != 1 {
			t.Errorf("expected 2 succeeded and 1 failed, got %+v", result)
		}
		if result.Results[1].Success() {
			t.Error("expected second result to fail")
		}

		errs := result.Errors()
		if len(errs) != 1 || !errors.Is(errs[0], daemon.ErrUnexpectedResponse) {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("cancelled context fails undispatched tasks", func(t *testing.T) {
		mock := tu.NewMockAdapter(models.DaemonDummy, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := RunBatch(ctx, mock, pauseTasks("a", "b"), BatchOpts{RateLimit: 1000}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Failed != 2 || len(result.Results) != 2 {
			t.Fatalf("expected 2 failed results, got %+v", result)
		}
		for _, res := range result.Results {
			if !errors.Is(daemon.Err(res), daemon.ErrConnectionError) {
				t.Errorf("expected connection error, got %v", daemon.Err(res))
			}
		}
		if len(mock.Methods()) != 0 {
			t.Errorf("expected no adapter calls, got %v", mock.Methods())
		}
	})

	t.Run("worker count is capped", func(t *testing.T) {
		var active, peak int32
		mock := tu.NewMockAdapter(models.DaemonDummy, nil)
		mock.ExecuteFunc = func(_ context.Context, task daemon.Task) daemon.Result {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			atomic.AddInt32(&active, -1)
			return daemon.Succeed(task)
		}

		hashes := make([]string, 15)
		for i := range hashes {
			hashes[i] = string(rune('a' + i))
		}

		result, err := RunBatch(context.Background(), mock, pauseTasks(hashes...), BatchOpts{NumWorkers: 50, RateLimit: 1000}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Succeeded != 15 {
			t.Errorf("expected 15 successes, got %d", result.Succeeded)
		}
		if peak > maxWorkers {
			t.Errorf("expected at most %d concurrent tasks, saw %d", maxWorkers, peak)
		}
	})

	t.Run("nil adapter", func(t *testing.T) {
		_, err := RunBatch(context.Background(), nil, pauseTasks("a"), BatchOpts{}, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		mock := tu.NewMockAdapter(models.DaemonDummy, nil)
		result, err := RunBatch(context.Background(), mock, nil, BatchOpts{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 || len(result.Results) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}

func TestRunBatchProgress(t *testing.T) {
	mock := tu.NewMockAdapter(models.DaemonDummy, nil)
	mock.ExecuteFunc = func(_ context.Context, task daemon.Task) daemon.Result {
		if task.Target().UniqueID == "b" {
			return daemon.Fail(task, errors.New("boom"))
		}
		return daemon.Succeed(task)
	}

	prog := make(chan ProgressUpdate, 16)
	if _, err := RunBatch(context.Background(), mock, pauseTasks("a", "b"), BatchOpts{RateLimit: 1000}, prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(prog)

	counts := map[Phase]int{}
	var failure ProgressUpdate
	for u := range prog {
		counts[u.Phase]++
		if u.Phase == Failed {
			failure = u
		}
	}

	if counts[Dispatch] != 2 {
		t.Errorf("expected 2 dispatch updates, got %d", counts[Dispatch])
	}
	if counts[Completed] != 1 || counts[Failed] != 1 {
		t.Errorf("expected 1 completed and 1 failed update, got %v", counts)
	}
	if !strings.Contains(failure.Message, "torrent b") || !strings.Contains(failure.Message, "boom") {
		t.Errorf("unexpected failure message: %q", failure.Message)
	}
	if _, ok := failure.Data.(daemon.Result); !ok {
		t.Errorf("expected result payload, got %T", failure.Data)
	}
}

func TestSendProgress(t *testing.T) {
	t.Run("nil channel", func(t *testing.T) {
		sendProgress(nil, ProgressUpdate{Phase: Dispatch})
	})

	t.Run("full channel does not block", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		sendProgress(ch, ProgressUpdate{Phase: Dispatch})
		sendProgress(ch, ProgressUpdate{Phase: Completed})
		if u := <-ch; u.Phase != Dispatch {
			t.Errorf("expected first update to be kept, got %v", u.Phase)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{Dispatch, "dispatch"},
		{Completed, "completed"},
		{Failed, "failed"},
		{Cancelled, "cancelled"},
		{Phase(99), ""},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
