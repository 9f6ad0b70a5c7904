package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/shared"
)

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 5.0
)

// BatchOpts contains configuration for a batch of daemon tasks.
type BatchOpts struct {
	NumWorkers int         // Concurrent workers (default: 5, max: 10)
	RateLimit  float64     // Tasks dispatched per second (default: 5)
	Logger     *log.Logger // Optional
}

// BatchResult summarizes a finished batch. Results[i] belongs to the i-th task.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []daemon.Result
}

// Errors returns the failures of the batch in task order.
func (r *BatchResult) Errors() []error {
	var errs []error
	for _, res := range r.Results {
		if err := daemon.Err(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

type batchJob struct {
	index int
	task  daemon.Task
}

type batchOutcome struct {
	index  int
	result daemon.Result
}

// RunBatch executes tasks concurrently against a with rate limiting and progress tracking.
//
// Failures never abort the batch. Tasks left undispatched when ctx ends fail with
// [daemon.ConnectionError].
func RunBatch(
	ctx context.Context,
	a daemon.Adapter,
	tasks []daemon.Task,
	opts BatchOpts,
	prog chan<- ProgressUpdate,
) (*BatchResult, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: adapter not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	result := &BatchResult{
		Total:   len(tasks),
		Results: make([]daemon.Result, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan batchJob, len(tasks))
	outcomes := make(chan batchOutcome, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go worker(ctx, &wg, a, jobs, outcomes)
	}

	go func() {
		defer close(jobs)
		for i, task := range tasks {
			if err := ctx.Err(); err != nil {
				failRemaining(tasks, i, err, outcomes)
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				failRemaining(tasks, i, err, outcomes)
				return
			}
			sendProgress(prog, dispatchUpdate(i+1, len(tasks), task))
			jobs <- batchJob{index: i, task: task}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	completed := 0
	for out := range outcomes {
		completed++
		result.Results[out.index] = out.result

		if out.result.Success() {
			result.Succeeded++
		} else {
			result.Failed++
			if opts.Logger != nil {
				opts.Logger.Warn("batch task failed", "task", describe(out.result.Task()), "error", daemon.Err(out.result))
			}
		}
		sendProgress(prog, resultUpdate(completed, len(tasks), out.result))
	}

	if ctx.Err() != nil {
		sendProgress(prog, cancelledUpdate(result.Succeeded, len(tasks)))
	}
	return result, nil
}

// worker executes jobs until the jobs channel is closed. Every job yields exactly one outcome.
func worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	a daemon.Adapter,
	jobs <-chan batchJob,
	outcomes chan<- batchOutcome,
) {
	defer wg.Done()

	for job := range jobs {
		outcomes <- batchOutcome{index: job.index, result: a.ExecuteTask(ctx, job.task)}
	}
}

// failRemaining reports every task from index start on as a connection failure.
// outcomes is buffered for all tasks, so these sends never block.
func failRemaining(tasks []daemon.Task, start int, cause error, outcomes chan<- batchOutcome) {
	for i := start; i < len(tasks); i++ {
		err := daemon.NewError(daemon.ConnectionError, "%s not dispatched: %v", describe(tasks[i]), cause)
		outcomes <- batchOutcome{index: i, result: daemon.Fail(tasks[i], err)}
	}
}
