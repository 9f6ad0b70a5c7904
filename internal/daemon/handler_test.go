package daemon

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/tdx/internal/models"
)

type panickingHandler struct {
	Unsupported
}

func (panickingHandler) Pause(context.Context, PauseTask) error {
	panic("boom")
}

func (panickingHandler) Stop(context.Context, StopTask) error {
	return errors.New("connection reset")
}

func (panickingHandler) Start(context.Context, StartTask) error {
	return NewError(AuthenticationFailure, "bad credentials")
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	h := panickingHandler{Unsupported{Kind: models.DaemonDeluge}}
	tor := models.Torrent{UniqueID: "abc"}

	t.Run("nil task", func(t *testing.T) {
		res := Execute(ctx, h, nil)
		if !errors.Is(Err(res), ErrParsingFailed) {
			t.Errorf("expected ParsingFailed, got %v", Err(res))
		}
		if res.Task() != nil {
			t.Errorf("expected no task, got %v", res.Task())
		}
	})

	t.Run("nil handler", func(t *testing.T) {
		res := Execute(ctx, nil, NewPauseAllTask())
		if !errors.Is(Err(res), ErrMethodInitFailed) {
			t.Errorf("expected MethodInitFailed, got %v", Err(res))
		}
	})

	t.Run("panic becomes failure", func(t *testing.T) {
		res := Execute(ctx, h, NewPauseTask(tor))
		err := Err(res)
		if !errors.Is(err, ErrUnexpectedResponse) {
			t.Fatalf("expected UnexpectedResponse, got %v", err)
		}
		if !strings.Contains(err.Error(), "boom") {
			t.Errorf("expected panic value in message, got %q", err.Error())
		}
	})

	t.Run("foreign error is unexpected response", func(t *testing.T) {
		res := Execute(ctx, h, NewStopTask(tor))
		if !errors.Is(Err(res), ErrUnexpectedResponse) {
			t.Errorf("expected UnexpectedResponse, got %v", Err(res))
		}
	})

	t.Run("daemon error kept", func(t *testing.T) {
		res := Execute(ctx, h, NewStartTask(tor))
		if !errors.Is(Err(res), ErrAuthenticationFailure) {
			t.Errorf("expected AuthenticationFailure, got %v", Err(res))
		}
	})

	t.Run("unsupported names method and backend", func(t *testing.T) {
		res := Execute(ctx, h, NewSetLabelTask(tor, "x"))
		f, ok := res.(FailureResult)
		if !ok {
			t.Fatalf("expected failure, got %T", res)
		}
		if f.Err.Type != MethodUnsupported || f.Err.Message != "SetLabel is not supported by deluge" {
			t.Errorf("unexpected error %v", f.Err)
		}
	})

	t.Run("every method rejected by Unsupported", func(t *testing.T) {
		u := Unsupported{Kind: models.DaemonVuze}
		tasks := []Task{
			NewRetrieveTask(), NewGetTorrentDetailsTask(tor), NewGetFileListTask(tor), NewAddByFileTask("a"),
			NewAddByUrlTask("u", ""), NewAddByMagnetUrlTask("m"), NewRemoveTask(tor, false), NewPauseTask(tor),
			NewPauseAllTask(), NewResumeTask(tor), NewResumeAllTask(), NewStopTask(tor), NewStopAllTask(),
			NewStartTask(tor), NewStartAllTask(), NewSetFilePrioritiesTask(tor, nil, models.PriorityLow),
			NewSetTransferRatesTask(nil, nil), NewSetLabelTask(tor, ""), NewSetTrackersTask(tor, nil),
			NewSetDownloadLocationTask(tor, ""), NewSetAlternativeModeTask(false), NewGetStatsTask(),
			NewForceRecheckTask(tor),
		}
		if len(tasks) != len(Methods()) {
			t.Fatalf("expected a task per method, got %d for %d", len(tasks), len(Methods()))
		}

		for _, task := range tasks {
			res := Execute(ctx, u, task)
			if res.Success() {
				t.Errorf("%s: expected failure", task.Method())
				continue
			}
			if res.Task().Method() != task.Method() {
				t.Errorf("result references %s, expected %s", res.Task().Method(), task.Method())
			}
			if !strings.HasPrefix(Err(res).(*DaemonError).Message, task.Method().String()) {
				t.Errorf("%s: unexpected message %v", task.Method(), Err(res))
			}
		}
	})
}

func TestTaskTargets(t *testing.T) {
	tor := models.Torrent{UniqueID: "abc", Name: "Original"}

	task := NewPauseTask(tor)
	target := task.Target()
	target.Name = "Changed"
	if task.Target().Name != "Original" {
		t.Error("mutating the target must not change the task")
	}

	if NewPauseAllTask().Target() != nil {
		t.Error("untargeted tasks have no target")
	}

	if NewPauseTask(tor).ID() == task.ID() {
		t.Error("expected unique task IDs")
	}
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		m    Method
		want string
	}{
		{MethodRetrieve, "Retrieve"},
		{MethodAddByMagnetUrl, "AddByMagnetUrl"},
		{MethodForceRecheck, "ForceRecheck"},
		{Method(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestDaemonError(t *testing.T) {
	err := NewError(FileAccessError, "cannot read %s", "x.torrent")
	if err.Error() != "FileAccessError: cannot read x.torrent" {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := errors.Join(errors.New("context"), err)
	if !errors.Is(wrapped, ErrFileAccessError) {
		t.Error("expected wrapped error to match sentinel")
	}
	if errors.Is(err, ErrParsingFailed) {
		t.Error("different types must not match")
	}

	if got := AsDaemonError(errors.New("plain")); got.Type != UnexpectedResponse || got.Message != "plain" {
		t.Errorf("unexpected conversion %+v", got)
	}
	if AsDaemonError(nil) != nil {
		t.Error("nil stays nil")
	}
}
