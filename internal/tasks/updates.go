package tasks

import (
	"fmt"

	"github.com/desertthunder/tdx/internal/daemon"
)

// ProgressUpdate represents a progress event during a batch.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // The [daemon.Result] for completed tasks
}

// Operation phase enumeration
type Phase int

const (
	Dispatch Phase = iota
	Completed
	Failed
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Dispatch:
		return "dispatch"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func describe(task daemon.Task) string {
	if task == nil {
		return "task"
	}
	if target := task.Target(); target != nil {
		name := target.Name
		if name == "" {
			name = target.UniqueID
		}
		return fmt.Sprintf("%s %s", task.Method(), name)
	}
	return task.Method().String()
}

func dispatchUpdate(step, total int, task daemon.Task) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Dispatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s...", step, total, describe(task)),
	}
}

func resultUpdate(step, total int, res daemon.Result) ProgressUpdate {
	if err := daemon.Err(res); err != nil {
		return ProgressUpdate{
			Phase:   Failed,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, describe(res.Task()), err),
			Data:    res,
		}
	}
	return ProgressUpdate{
		Phase:   Completed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, describe(res.Task())),
		Data:    res,
	}
}

func cancelledUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Cancelled,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Batch cancelled: %d of %d tasks succeeded", step, total),
	}
}
