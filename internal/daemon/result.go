package daemon

import "github.com/desertthunder/tdx/internal/models"

// Result is the outcome of exactly one [Task].
type Result interface {
	Task() Task
	Success() bool

	isResult()
}

type resultBase struct{ task Task }

func (r resultBase) Task() Task { return r.task }
func (resultBase) isResult()    {}

// SuccessResult is returned by tasks without a payload.
type SuccessResult struct{ resultBase }

func (SuccessResult) Success() bool { return true }

type RetrieveResult struct {
	resultBase
	Torrents []models.Torrent
	Labels   []models.Label
}

func (RetrieveResult) Success() bool { return true }

type TorrentDetailsResult struct {
	resultBase
	Details models.TorrentDetails
}

func (TorrentDetailsResult) Success() bool { return true }

type FileListResult struct {
	resultBase
	Files []models.TorrentFile
}

func (FileListResult) Success() bool { return true }

type StatsResult struct {
	resultBase
	Stats models.Stats
}

func (StatsResult) Success() bool { return true }

// FailureResult reports why a task could not be executed.
type FailureResult struct {
	resultBase
	Err *DaemonError
}

func (FailureResult) Success() bool { return false }

// Succeed builds a payload-less success for t.
func Succeed(t Task) SuccessResult {
	return SuccessResult{resultBase{t}}
}

// Fail builds a failure for t. Errors that are not a [DaemonError] are reported as [UnexpectedResponse].
func Fail(t Task, err error) FailureResult {
	de := AsDaemonError(err)
	if de == nil {
		de = NewError(UnexpectedResponse, "%s failed without an error", methodOf(t))
	}
	return FailureResult{resultBase: resultBase{t}, Err: de}
}

// NewRetrieveResult, NewTorrentDetailsResult, NewFileListResult and NewStatsResult let adapters
// outside this package build payload results.
func NewRetrieveResult(t RetrieveTask, torrents []models.Torrent, labels []models.Label) RetrieveResult {
	return RetrieveResult{resultBase: resultBase{t}, Torrents: torrents, Labels: labels}
}

func NewTorrentDetailsResult(t GetTorrentDetailsTask, d models.TorrentDetails) TorrentDetailsResult {
	return TorrentDetailsResult{resultBase: resultBase{t}, Details: d}
}

func NewFileListResult(t GetFileListTask, files []models.TorrentFile) FileListResult {
	return FileListResult{resultBase: resultBase{t}, Files: files}
}

func NewStatsResult(t GetStatsTask, s models.Stats) StatsResult {
	return StatsResult{resultBase: resultBase{t}, Stats: s}
}

// Err returns the failure of r as an error, or nil when r succeeded.
func Err(r Result) error {
	if f, ok := r.(FailureResult); ok {
		return f.Err
	}
	return nil
}

func methodOf(t Task) string {
	if t == nil {
		return "task"
	}
	return t.Method().String()
}
