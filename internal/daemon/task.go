package daemon

import (
	"context"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// Task is a request for one daemon operation.
//
// The set of tasks is closed: every task type is declared in this package and dispatched through
// [Handler], so an adapter cannot compile without handling or rejecting each kind.
type Task interface {
	// ID correlates a task with its log lines and result.
	ID() string
	Method() Method
	// Target returns the torrent the task acts on, or nil for untargeted tasks.
	Target() *models.Torrent

	execute(ctx context.Context, h Handler) Result
}

type taskID struct{ id string }

func newTaskID() taskID { return taskID{id: shared.GenerateID()} }

func (t taskID) ID() string { return t.id }

type untargeted struct{}

func (untargeted) Target() *models.Torrent { return nil }

// targeted holds a copy of the torrent a task refers to. Adapters look it up by UniqueID.
type targeted struct{ Torrent models.Torrent }

func (t targeted) Target() *models.Torrent {
	c := t.Torrent
	return &c
}

type RetrieveTask struct {
	taskID
	untargeted
}

func NewRetrieveTask() RetrieveTask { return RetrieveTask{taskID: newTaskID()} }

func (RetrieveTask) Method() Method { return MethodRetrieve }

func (t RetrieveTask) execute(ctx context.Context, h Handler) Result {
	torrents, labels, err := h.Retrieve(ctx, t)
	if err != nil {
		return Fail(t, err)
	}
	return RetrieveResult{resultBase: resultBase{t}, Torrents: torrents, Labels: labels}
}

type GetTorrentDetailsTask struct {
	taskID
	targeted
}

func NewGetTorrentDetailsTask(t models.Torrent) GetTorrentDetailsTask {
	return GetTorrentDetailsTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (GetTorrentDetailsTask) Method() Method { return MethodGetTorrentDetails }

func (t GetTorrentDetailsTask) execute(ctx context.Context, h Handler) Result {
	details, err := h.GetTorrentDetails(ctx, t)
	if err != nil {
		return Fail(t, err)
	}
	return TorrentDetailsResult{resultBase: resultBase{t}, Details: details}
}

type GetFileListTask struct {
	taskID
	targeted
}

func NewGetFileListTask(t models.Torrent) GetFileListTask {
	return GetFileListTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (GetFileListTask) Method() Method { return MethodGetFileList }

func (t GetFileListTask) execute(ctx context.Context, h Handler) Result {
	files, err := h.GetFileList(ctx, t)
	if err != nil {
		return Fail(t, err)
	}
	return FileListResult{resultBase: resultBase{t}, Files: files}
}

// AddByFileTask uploads a local .torrent file. File is a path or file:// URI.
type AddByFileTask struct {
	taskID
	untargeted
	File string
}

func NewAddByFileTask(file string) AddByFileTask {
	return AddByFileTask{taskID: newTaskID(), File: file}
}

func (AddByFileTask) Method() Method { return MethodAddByFile }

func (t AddByFileTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.AddByFile(ctx, t))
}

// AddByUrlTask asks the daemon to fetch a .torrent from URL. Title optionally names the new torrent.
type AddByUrlTask struct {
	taskID
	untargeted
	URL   string
	Title string
}

func NewAddByUrlTask(url, title string) AddByUrlTask {
	return AddByUrlTask{taskID: newTaskID(), URL: url, Title: title}
}

func (AddByUrlTask) Method() Method { return MethodAddByUrl }

func (t AddByUrlTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.AddByUrl(ctx, t))
}

type AddByMagnetUrlTask struct {
	taskID
	untargeted
	URL string
}

func NewAddByMagnetUrlTask(url string) AddByMagnetUrlTask {
	return AddByMagnetUrlTask{taskID: newTaskID(), URL: url}
}

func (AddByMagnetUrlTask) Method() Method { return MethodAddByMagnetUrl }

func (t AddByMagnetUrlTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.AddByMagnetUrl(ctx, t))
}

type RemoveTask struct {
	taskID
	targeted
	IncludingData bool
}

func NewRemoveTask(t models.Torrent, includingData bool) RemoveTask {
	return RemoveTask{taskID: newTaskID(), targeted: targeted{t}, IncludingData: includingData}
}

func (RemoveTask) Method() Method { return MethodRemove }

func (t RemoveTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.Remove(ctx, t))
}

type PauseTask struct {
	taskID
	targeted
}

func NewPauseTask(t models.Torrent) PauseTask {
	return PauseTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (PauseTask) Method() Method { return MethodPause }

func (t PauseTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.Pause(ctx, t))
}

type PauseAllTask struct {
	taskID
	untargeted
}

func NewPauseAllTask() PauseAllTask { return PauseAllTask{taskID: newTaskID()} }

func (PauseAllTask) Method() Method { return MethodPauseAll }

func (t PauseAllTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.PauseAll(ctx, t))
}

type ResumeTask struct {
	taskID
	targeted
}

func NewResumeTask(t models.Torrent) ResumeTask {
	return ResumeTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (ResumeTask) Method() Method { return MethodResume }

func (t ResumeTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.Resume(ctx, t))
}

type ResumeAllTask struct {
	taskID
	untargeted
}

func NewResumeAllTask() ResumeAllTask { return ResumeAllTask{taskID: newTaskID()} }

func (ResumeAllTask) Method() Method { return MethodResumeAll }

func (t ResumeAllTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.ResumeAll(ctx, t))
}

type StopTask struct {
	taskID
	targeted
}

func NewStopTask(t models.Torrent) StopTask {
	return StopTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (StopTask) Method() Method { return MethodStop }

func (t StopTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.Stop(ctx, t))
}

type StopAllTask struct {
	taskID
	untargeted
}

func NewStopAllTask() StopAllTask { return StopAllTask{taskID: newTaskID()} }

func (StopAllTask) Method() Method { return MethodStopAll }

func (t StopAllTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.StopAll(ctx, t))
}

type StartTask struct {
	taskID
	targeted
}

func NewStartTask(t models.Torrent) StartTask {
	return StartTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (StartTask) Method() Method { return MethodStart }

func (t StartTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.Start(ctx, t))
}

type StartAllTask struct {
	taskID
	untargeted
}

func NewStartAllTask() StartAllTask { return StartAllTask{taskID: newTaskID()} }

func (StartAllTask) Method() Method { return MethodStartAll }

func (t StartAllTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.StartAll(ctx, t))
}

// SetFilePrioritiesTask sets Priority on the listed files of a torrent. Files are matched by Key.
type SetFilePrioritiesTask struct {
	taskID
	targeted
	Files    []models.TorrentFile
	Priority models.Priority
}

func NewSetFilePrioritiesTask(t models.Torrent, files []models.TorrentFile, p models.Priority) SetFilePrioritiesTask {
	fs := make([]models.TorrentFile, len(files))
	copy(fs, files)
	return SetFilePrioritiesTask{taskID: newTaskID(), targeted: targeted{t}, Files: fs, Priority: p}
}

func (SetFilePrioritiesTask) Method() Method { return MethodSetFilePriorities }

func (t SetFilePrioritiesTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.SetFilePriorities(ctx, t))
}

// SetTransferRatesTask sets daemon-wide limits in bytes per second. A nil limit means unlimited.
type SetTransferRatesTask struct {
	taskID
	untargeted
	UploadRate   *int64
	DownloadRate *int64
}

func NewSetTransferRatesTask(up, down *int64) SetTransferRatesTask {
	return SetTransferRatesTask{taskID: newTaskID(), UploadRate: up, DownloadRate: down}
}

func (SetTransferRatesTask) Method() Method { return MethodSetTransferRates }

func (t SetTransferRatesTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.SetTransferRates(ctx, t))
}

type SetLabelTask struct {
	taskID
	targeted
	Label string
}

func NewSetLabelTask(t models.Torrent, label string) SetLabelTask {
	return SetLabelTask{taskID: newTaskID(), targeted: targeted{t}, Label: label}
}

func (SetLabelTask) Method() Method { return MethodSetLabel }

func (t SetLabelTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.SetLabel(ctx, t))
}

type SetTrackersTask struct {
	taskID
	targeted
	Trackers []string
}

func NewSetTrackersTask(t models.Torrent, trackers []string) SetTrackersTask {
	ts := make([]string, len(trackers))
	copy(ts, trackers)
	return SetTrackersTask{taskID: newTaskID(), targeted: targeted{t}, Trackers: ts}
}

func (SetTrackersTask) Method() Method { return MethodSetTrackers }

func (t SetTrackersTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.SetTrackers(ctx, t))
}

type SetDownloadLocationTask struct {
	taskID
	targeted
	Location string
}

func NewSetDownloadLocationTask(t models.Torrent, location string) SetDownloadLocationTask {
	return SetDownloadLocationTask{taskID: newTaskID(), targeted: targeted{t}, Location: location}
}

func (SetDownloadLocationTask) Method() Method { return MethodSetDownloadLocation }

func (t SetDownloadLocationTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.SetDownloadLocation(ctx, t))
}

// SetAlternativeModeTask toggles the daemon's alternative (turtle) speed limits.
type SetAlternativeModeTask struct {
	taskID
	untargeted
	Enabled bool
}

func NewSetAlternativeModeTask(enabled bool) SetAlternativeModeTask {
	return SetAlternativeModeTask{taskID: newTaskID(), Enabled: enabled}
}

func (SetAlternativeModeTask) Method() Method { return MethodSetAlternativeMode }

func (t SetAlternativeModeTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.SetAlternativeMode(ctx, t))
}

type GetStatsTask struct {
	taskID
	untargeted
}

func NewGetStatsTask() GetStatsTask { return GetStatsTask{taskID: newTaskID()} }

func (GetStatsTask) Method() Method { return MethodGetStats }

func (t GetStatsTask) execute(ctx context.Context, h Handler) Result {
	stats, err := h.GetStats(ctx, t)
	if err != nil {
		return Fail(t, err)
	}
	return StatsResult{resultBase: resultBase{t}, Stats: stats}
}

type ForceRecheckTask struct {
	taskID
	targeted
}

func NewForceRecheckTask(t models.Torrent) ForceRecheckTask {
	return ForceRecheckTask{taskID: newTaskID(), targeted: targeted{t}}
}

func (ForceRecheckTask) Method() Method { return MethodForceRecheck }

func (t ForceRecheckTask) execute(ctx context.Context, h Handler) Result {
	return done(t, h.ForceRecheck(ctx, t))
}

func done(t Task, err error) Result {
	if err != nil {
		return Fail(t, err)
	}
	return Succeed(t)
}
