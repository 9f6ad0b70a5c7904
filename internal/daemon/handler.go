package daemon

import (
	"context"
	"fmt"

	"github.com/desertthunder/tdx/internal/models"
)

// Handler has one method per task kind. Adapters implement it (usually embedding [Unsupported] for the
// kinds they reject) and dispatch through [Execute].
type Handler interface {
	Retrieve(ctx context.Context, t RetrieveTask) ([]models.Torrent, []models.Label, error)
	GetTorrentDetails(ctx context.Context, t GetTorrentDetailsTask) (models.TorrentDetails, error)
	GetFileList(ctx context.Context, t GetFileListTask) ([]models.TorrentFile, error)
	AddByFile(ctx context.Context, t AddByFileTask) error
	AddByUrl(ctx context.Context, t AddByUrlTask) error
	AddByMagnetUrl(ctx context.Context, t AddByMagnetUrlTask) error
	Remove(ctx context.Context, t RemoveTask) error
	Pause(ctx context.Context, t PauseTask) error
	PauseAll(ctx context.Context, t PauseAllTask) error
	Resume(ctx context.Context, t ResumeTask) error
	ResumeAll(ctx context.Context, t ResumeAllTask) error
	Stop(ctx context.Context, t StopTask) error
	StopAll(ctx context.Context, t StopAllTask) error
	Start(ctx context.Context, t StartTask) error
	StartAll(ctx context.Context, t StartAllTask) error
	SetFilePriorities(ctx context.Context, t SetFilePrioritiesTask) error
	SetTransferRates(ctx context.Context, t SetTransferRatesTask) error
	SetLabel(ctx context.Context, t SetLabelTask) error
	SetTrackers(ctx context.Context, t SetTrackersTask) error
	SetDownloadLocation(ctx context.Context, t SetDownloadLocationTask) error
	SetAlternativeMode(ctx context.Context, t SetAlternativeModeTask) error
	GetStats(ctx context.Context, t GetStatsTask) (models.Stats, error)
	ForceRecheck(ctx context.Context, t ForceRecheckTask) error
}

// Execute dispatches task to the matching method of h and converts the outcome into a [Result].
//
// It never panics: a nil task, a nil handler, a cancelled context and a panicking handler all
// produce a [FailureResult].
func Execute(ctx context.Context, h Handler, task Task) (res Result) {
	if task == nil {
		return FailureResult{Err: NewError(ParsingFailed, "no task given")}
	}
	if h == nil {
		return Fail(task, NewError(MethodInitFailed, "no adapter available for %s", task.Method()))
	}
	if err := ctx.Err(); err != nil {
		return Fail(task, NewError(ConnectionError, "%s cancelled: %v", task.Method(), err))
	}

	defer func() {
		if r := recover(); r != nil {
			res = Fail(task, NewError(UnexpectedResponse, "%s panicked: %v", task.Method(), r))
		}
	}()

	return task.execute(ctx, h)
}

// Unsupported rejects every task kind with [MethodUnsupported]. Embed it in an adapter and override
// the methods the backend implements.
type Unsupported struct {
	Kind models.Daemon
}

var _ Handler = Unsupported{}

func (u Unsupported) reject(m Method) error {
	return NotSupported(m, u.Kind)
}

func (u Unsupported) Retrieve(context.Context, RetrieveTask) ([]models.Torrent, []models.Label, error) {
	return nil, nil, u.reject(MethodRetrieve)
}

func (u Unsupported) GetTorrentDetails(context.Context, GetTorrentDetailsTask) (models.TorrentDetails, error) {
	return models.TorrentDetails{}, u.reject(MethodGetTorrentDetails)
}

func (u Unsupported) GetFileList(context.Context, GetFileListTask) ([]models.TorrentFile, error) {
	return nil, u.reject(MethodGetFileList)
}

func (u Unsupported) AddByFile(context.Context, AddByFileTask) error {
	return u.reject(MethodAddByFile)
}

func (u Unsupported) AddByUrl(context.Context, AddByUrlTask) error {
	return u.reject(MethodAddByUrl)
}

func (u Unsupported) AddByMagnetUrl(context.Context, AddByMagnetUrlTask) error {
	return u.reject(MethodAddByMagnetUrl)
}

func (u Unsupported) Remove(context.Context, RemoveTask) error { return u.reject(MethodRemove) }
func (u Unsupported) Pause(context.Context, PauseTask) error   { return u.reject(MethodPause) }

func (u Unsupported) PauseAll(context.Context, PauseAllTask) error { return u.reject(MethodPauseAll) }
func (u Unsupported) Resume(context.Context, ResumeTask) error     { return u.reject(MethodResume) }

func (u Unsupported) ResumeAll(context.Context, ResumeAllTask) error {
	return u.reject(MethodResumeAll)
}

func (u Unsupported) Stop(context.Context, StopTask) error         { return u.reject(MethodStop) }
func (u Unsupported) StopAll(context.Context, StopAllTask) error   { return u.reject(MethodStopAll) }
func (u Unsupported) Start(context.Context, StartTask) error       { return u.reject(MethodStart) }
func (u Unsupported) StartAll(context.Context, StartAllTask) error { return u.reject(MethodStartAll) }

func (u Unsupported) SetFilePriorities(context.Context, SetFilePrioritiesTask) error {
	return u.reject(MethodSetFilePriorities)
}

func (u Unsupported) SetTransferRates(context.Context, SetTransferRatesTask) error {
	return u.reject(MethodSetTransferRates)
}

func (u Unsupported) SetLabel(context.Context, SetLabelTask) error {
	return u.reject(MethodSetLabel)
}

func (u Unsupported) SetTrackers(context.Context, SetTrackersTask) error {
	return u.reject(MethodSetTrackers)
}

func (u Unsupported) SetDownloadLocation(context.Context, SetDownloadLocationTask) error {
	return u.reject(MethodSetDownloadLocation)
}

func (u Unsupported) SetAlternativeMode(context.Context, SetAlternativeModeTask) error {
	return u.reject(MethodSetAlternativeMode)
}

func (u Unsupported) GetStats(context.Context, GetStatsTask) (models.Stats, error) {
	return models.Stats{}, u.reject(MethodGetStats)
}

func (u Unsupported) ForceRecheck(context.Context, ForceRecheckTask) error {
	return u.reject(MethodForceRecheck)
}

// String describes the handler in log output.
func (u Unsupported) String() string {
	return fmt.Sprintf("unsupported(%s)", u.Kind)
}
