package daemon

import (
	"context"

	"github.com/desertthunder/tdx/internal/models"
)

// Adapter talks to one torrent daemon.
//
// ExecuteTask returns exactly one [Result] per task and never panics.
type Adapter interface {
	ExecuteTask(ctx context.Context, task Task) Result
	Type() models.Daemon
	Settings() models.DaemonSettings
}

// Retrieve runs a [RetrieveTask] and unwraps its payload.
func Retrieve(ctx context.Context, a Adapter) ([]models.Torrent, []models.Label, error) {
	res := a.ExecuteTask(ctx, NewRetrieveTask())
	switch r := res.(type) {
	case RetrieveResult:
		return r.Torrents, r.Labels, nil
	default:
		return nil, nil, resultError(res, MethodRetrieve)
	}
}

// FindTorrent retrieves the torrent list and returns the torrent with the given unique hash.
func FindTorrent(ctx context.Context, a Adapter, hash string) (models.Torrent, error) {
	torrents, _, err := Retrieve(ctx, a)
	if err != nil {
		return models.Torrent{}, err
	}
	for _, t := range torrents {
		if t.UniqueID == hash {
			return t, nil
		}
	}
	return models.Torrent{}, NewError(UnexpectedResponse, "torrent %s not found", hash)
}

// FileList runs a [GetFileListTask] for t and unwraps its payload.
func FileList(ctx context.Context, a Adapter, t models.Torrent) ([]models.TorrentFile, error) {
	res := a.ExecuteTask(ctx, NewGetFileListTask(t))
	if r, ok := res.(FileListResult); ok {
		return r.Files, nil
	}
	return nil, resultError(res, MethodGetFileList)
}

// Details runs a [GetTorrentDetailsTask] for t and unwraps its payload.
func Details(ctx context.Context, a Adapter, t models.Torrent) (models.TorrentDetails, error) {
	res := a.ExecuteTask(ctx, NewGetTorrentDetailsTask(t))
	if r, ok := res.(TorrentDetailsResult); ok {
		return r.Details, nil
	}
	return models.TorrentDetails{}, resultError(res, MethodGetTorrentDetails)
}

// Stats runs a [GetStatsTask] and unwraps its payload.
func Stats(ctx context.Context, a Adapter) (models.Stats, error) {
	res := a.ExecuteTask(ctx, NewGetStatsTask())
	if r, ok := res.(StatsResult); ok {
		return r.Stats, nil
	}
	return models.Stats{}, resultError(res, MethodGetStats)
}

func resultError(res Result, m Method) error {
	if err := Err(res); err != nil {
		return err
	}
	return NewError(UnexpectedResponse, "%s returned an unexpected result %T", m, res)
}
