package daemon

import (
	"context"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

const addedTorrentSize = 1000 * mib

// DummyOpts configures a [DummyAdapter].
type DummyOpts struct {
	// Seed for the sample generator; 0 derives one from the clock.
	Seed int64
	// Now defaults to [time.Now].
	Now    func() time.Time
	Logger *log.Logger
	// Unsupported lists extra methods to reject, simulating a more limited backend.
	Unsupported []Method
}

// DummyAdapter is an in-memory daemon seeded with sample torrents.
//
// Task execution is serialized. Results never alias the adapter's state.
type DummyAdapter struct {
	Unsupported

	settings models.DaemonSettings
	logger   *log.Logger
	now      func() time.Time
	rejected map[Method]bool

	mu       sync.Mutex
	torrents []models.Torrent
	labels   []models.Label
	files    map[string][]models.TorrentFile
}

var (
	_ Adapter = (*DummyAdapter)(nil)
	_ Handler = (*DummyAdapter)(nil)
)

// NewDummyAdapter creates a dummy adapter for settings.
func NewDummyAdapter(settings models.DaemonSettings, opts DummyOpts) *DummyAdapter {
	if settings.Type == "" {
		settings.Type = models.DaemonDummy
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Now().UnixNano()
	}

	rejected := make(map[Method]bool, len(opts.Unsupported))
	for _, m := range opts.Unsupported {
		rejected[m] = true
	}

	sample := GenerateSample(seed, opts.Now(), settings.Type)
	return &DummyAdapter{
		Unsupported: Unsupported{Kind: settings.Type},
		settings:    settings,
		logger:      opts.Logger,
		now:         opts.Now,
		rejected:    rejected,
		torrents:    sample.Torrents,
		labels:      sample.Labels,
		files:       make(map[string][]models.TorrentFile),
	}
}

func (d *DummyAdapter) Type() models.Daemon             { return d.settings.Type }
func (d *DummyAdapter) Settings() models.DaemonSettings { return d.settings }

func (d *DummyAdapter) String() string {
	return "dummy(" + d.settings.Name + ")"
}

// ExecuteTask runs task against the in-memory state.
func (d *DummyAdapter) ExecuteTask(ctx context.Context, task Task) Result {
	if task != nil && d.rejected[task.Method()] {
		return Fail(task, NotSupported(task.Method(), d.settings.Type))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return Execute(ctx, d, task)
}

func (d *DummyAdapter) Retrieve(context.Context, RetrieveTask) ([]models.Torrent, []models.Label, error) {
	return slices.Clone(d.torrents), slices.Clone(d.labels), nil
}

func (d *DummyAdapter) GetTorrentDetails(_ context.Context, t GetTorrentDetailsTask) (models.TorrentDetails, error) {
	i, err := d.find(t.Torrent.UniqueID)
	if err != nil {
		return models.TorrentDetails{}, err
	}
	return sampleDetails(d.torrents[i]), nil
}

func (d *DummyAdapter) GetFileList(_ context.Context, t GetFileListTask) ([]models.TorrentFile, error) {
	i, err := d.find(t.Torrent.UniqueID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.filesOf(d.torrents[i])), nil
}

func (d *DummyAdapter) AddByFile(_ context.Context, t AddByFileTask) error {
	d.logger.Debug("adding torrent", "file", t.File)
	if strings.TrimSpace(t.File) == "" {
		return NewError(FileAccessError, "No file specified")
	}

	p := t.File
	if strings.HasPrefix(p, "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return NewError(FileAccessError, "invalid file uri %q: %v", t.File, err)
		}
		p = u.Path
	}
	name := filepath.Base(p)

	d.add("torrent_file-", name, "isos")
	return nil
}

func (d *DummyAdapter) AddByUrl(_ context.Context, t AddByUrlTask) error {
	d.logger.Debug("adding torrent", "url", t.URL)
	if strings.TrimSpace(t.URL) == "" {
		return NewError(ParsingFailed, "No url specified")
	}

	u, err := url.Parse(t.URL)
	if err != nil {
		return NewError(ParsingFailed, "invalid url %q: %v", t.URL, err)
	}

	name := t.Title
	if name == "" {
		name = lastPathSegment(u.Path)
	}
	if name == "" {
		name = t.URL
	}

	d.add("torrent_byurl-", name, "music")
	return nil
}

func (d *DummyAdapter) AddByMagnetUrl(_ context.Context, t AddByMagnetUrlTask) error {
	d.logger.Debug("adding torrent", "magnet", t.URL)
	if strings.TrimSpace(t.URL) == "" {
		return NewError(ParsingFailed, "No magnet url specified")
	}

	u, err := url.Parse(t.URL)
	if err != nil || u.Scheme != "magnet" {
		return NewError(ParsingFailed, "not a magnet url: %q", t.URL)
	}

	q := u.Query()
	name := q.Get("dn")
	if name == "" {
		name = strings.TrimPrefix(q.Get("xt"), "urn:btih:")
	}
	if name == "" {
		return NewError(ParsingFailed, "magnet url has neither a name nor an info hash: %q", t.URL)
	}

	d.add("torrent_magnet-", name, "books")
	return nil
}

func (d *DummyAdapter) Remove(_ context.Context, t RemoveTask) error {
	i, err := d.find(t.Torrent.UniqueID)
	if err != nil {
		return err
	}
	delete(d.files, t.Torrent.UniqueID)
	d.torrents = slices.Delete(d.torrents, i, i+1)
	return nil
}

func (d *DummyAdapter) Pause(_ context.Context, t PauseTask) error {
	return d.mutate(t.Torrent.UniqueID, (*models.Torrent).MimicPause)
}

func (d *DummyAdapter) PauseAll(context.Context, PauseAllTask) error {
	d.mutateAll((*models.Torrent).MimicPause)
	return nil
}

func (d *DummyAdapter) Resume(_ context.Context, t ResumeTask) error {
	return d.mutate(t.Torrent.UniqueID, (*models.Torrent).MimicResume)
}

func (d *DummyAdapter) ResumeAll(context.Context, ResumeAllTask) error {
	d.mutateAll((*models.Torrent).MimicResume)
	return nil
}

func (d *DummyAdapter) Stop(_ context.Context, t StopTask) error {
	return d.mutate(t.Torrent.UniqueID, (*models.Torrent).MimicStop)
}

func (d *DummyAdapter) StopAll(context.Context, StopAllTask) error {
	d.mutateAll((*models.Torrent).MimicStop)
	return nil
}

func (d *DummyAdapter) Start(_ context.Context, t StartTask) error {
	return d.mutate(t.Torrent.UniqueID, (*models.Torrent).MimicStart)
}

func (d *DummyAdapter) StartAll(context.Context, StartAllTask) error {
	d.mutateAll((*models.Torrent).MimicStart)
	return nil
}

// SetFilePriorities checks every listed file before changing any of them.
func (d *DummyAdapter) SetFilePriorities(_ context.Context, t SetFilePrioritiesTask) error {
	i, err := d.find(t.Torrent.UniqueID)
	if err != nil {
		return err
	}

	files := d.filesOf(d.torrents[i])
	indexes := make([]int, 0, len(t.Files))
	for _, f := range t.Files {
		j := slices.IndexFunc(files, func(candidate models.TorrentFile) bool { return candidate.Key == f.Key })
		if j < 0 {
			return NewError(UnexpectedResponse, "file %s not found in torrent %s", f.Key, t.Torrent.UniqueID)
		}
		indexes = append(indexes, j)
	}

	for _, j := range indexes {
		files[j].MimicPriority(t.Priority)
	}
	return nil
}

// SetTransferRates is accepted without effect; the dummy has no transfers to limit.
func (d *DummyAdapter) SetTransferRates(context.Context, SetTransferRatesTask) error {
	return nil
}

func (d *DummyAdapter) SetLabel(_ context.Context, t SetLabelTask) error {
	return d.mutate(t.Torrent.UniqueID, func(tor *models.Torrent) { tor.MimicNewLabel(t.Label) })
}

func (d *DummyAdapter) SetTrackers(_ context.Context, t SetTrackersTask) error {
	_, err := d.find(t.Torrent.UniqueID)
	return err
}

func (d *DummyAdapter) add(prefix, name, label string) {
	d.torrents = append(d.torrents, models.Torrent{
		ID:          0,
		UniqueID:    prefix + shared.GenerateID(),
		Name:        name,
		Status:      models.StatusQueued,
		LocationDir: "/downloads/" + name,
		ETA:         -1,
		TotalSize:   addedTorrentSize,
		PartDone:    0,
		Available:   1,
		Label:       label,
		DateAdded:   d.now(),
		Daemon:      d.settings.Type,
	})
}

func (d *DummyAdapter) find(hash string) (int, error) {
	i := slices.IndexFunc(d.torrents, func(t models.Torrent) bool { return t.UniqueID == hash })
	if i < 0 {
		return -1, NewError(UnexpectedResponse, "torrent %s not found", hash)
	}
	return i, nil
}

func (d *DummyAdapter) mutate(hash string, fn func(*models.Torrent)) error {
	i, err := d.find(hash)
	if err != nil {
		return err
	}
	fn(&d.torrents[i])
	return nil
}

func (d *DummyAdapter) mutateAll(fn func(*models.Torrent)) {
	for i := range d.torrents {
		fn(&d.torrents[i])
	}
}

// filesOf returns the adapter-owned file list of t, creating it on first use.
func (d *DummyAdapter) filesOf(t models.Torrent) []models.TorrentFile {
	files, ok := d.files[t.UniqueID]
	if !ok {
		files = sampleFileList(t)
		d.files[t.UniqueID] = files
	}
	return files
}

func lastPathSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
