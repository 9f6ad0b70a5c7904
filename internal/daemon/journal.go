package daemon

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tdx/internal/models"
)

// Recorder persists task records. repositories.TaskLogRepository implements it.
type Recorder interface {
	Record(rec models.TaskRecord) error
}

type journaled struct {
	Adapter
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

// Journal wraps a so every task is recorded after it completes. A failing recorder is logged and
// never changes the task's result.
func Journal(a Adapter, r Recorder, logger *log.Logger) Adapter {
	return &journaled{Adapter: a, recorder: r, logger: logger, now: time.Now}
}

func (j *journaled) ExecuteTask(ctx context.Context, task Task) Result {
	start := j.now()
	res := j.Adapter.ExecuteTask(ctx, task)
	if task == nil {
		return res
	}

	rec := NewTaskRecord(j.Settings(), task, res, start.UTC(), j.now().Sub(start))
	if err := j.recorder.Record(rec); err != nil && j.logger != nil {
		j.logger.Warn("failed to journal task", "task", task.ID(), "method", task.Method(), "error", err)
	}
	return res
}

// NewTaskRecord describes the execution of task by the daemon configured with s.
func NewTaskRecord(s models.DaemonSettings, task Task, res Result, started time.Time, took time.Duration) models.TaskRecord {
	rec := models.TaskRecord{
		ID:         task.ID(),
		DaemonName: s.Name,
		Daemon:     s.Type,
		Method:     task.Method().String(),
		Success:    res != nil && res.Success(),
		StartedAt:  started,
		Duration:   took,
	}
	if target := task.Target(); target != nil {
		rec.Target = target.UniqueID
	}
	if f, ok := res.(FailureResult); ok && f.Err != nil {
		rec.ErrorType = f.Err.Type.String()
		rec.ErrorMessage = f.Err.Message
	}
	return rec
}
