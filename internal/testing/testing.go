// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/models"
)

// MockAdapter is a test double for [daemon.Adapter] that records every task it receives.
//
// ExecuteFunc, when set, decides the result. Otherwise tasks go to Handler through [daemon.Execute],
// and without a Handler every task succeeds with an empty payload.
type MockAdapter struct {
	Kind        models.Daemon
	Config      models.DaemonSettings
	Handler     daemon.Handler
	ExecuteFunc func(ctx context.Context, task daemon.Task) daemon.Result

	mu    sync.Mutex
	Calls []daemon.Task
}

var _ daemon.Adapter = (*MockAdapter)(nil)

// NewMockAdapter creates a mock of the given kind that answers through h (which may be nil).
func NewMockAdapter(kind models.Daemon, h daemon.Handler) *MockAdapter {
	return &MockAdapter{Kind: kind, Config: models.DaemonSettings{Name: "mock", Type: kind}, Handler: h}
}

func (m *MockAdapter) ExecuteTask(ctx context.Context, task daemon.Task) daemon.Result {
	m.mu.Lock()
	m.Calls = append(m.Calls, task)
	m.mu.Unlock()

	switch {
	case m.ExecuteFunc != nil:
		return m.ExecuteFunc(ctx, task)
	case m.Handler != nil:
		return daemon.Execute(ctx, m.Handler, task)
	default:
		return daemon.Execute(ctx, emptyHandler{}, task)
	}
}

func (m *MockAdapter) Type() models.Daemon {
	if m.Kind == "" {
		return models.DaemonDummy
	}
	return m.Kind
}

func (m *MockAdapter) Settings() models.DaemonSettings { return m.Config }

// Methods returns the methods of the recorded tasks in call order.
func (m *MockAdapter) Methods() []daemon.Method {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]daemon.Method, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Method()
	}
	return out
}

// CallCount returns how many tasks of method m were received.
func (m *MockAdapter) CallCount(method daemon.Method) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if c.Method() == method {
			n++
		}
	}
	return n
}

// Reset clears recorded calls.
func (m *MockAdapter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}

// emptyHandler accepts every task and returns empty payloads.
type emptyHandler struct{}

func (emptyHandler) Retrieve(context.Context, daemon.RetrieveTask) ([]models.Torrent, []models.Label, error) {
	return nil, nil, nil
}

func (emptyHandler) GetTorrentDetails(context.Context, daemon.GetTorrentDetailsTask) (models.TorrentDetails, error) {
	return models.TorrentDetails{}, nil
}

func (emptyHandler) GetFileList(context.Context, daemon.GetFileListTask) ([]models.TorrentFile, error) {
	return nil, nil
}

func (emptyHandler) AddByFile(context.Context, daemon.AddByFileTask) error           { return nil }
func (emptyHandler) AddByUrl(context.Context, daemon.AddByUrlTask) error             { return nil }
func (emptyHandler) AddByMagnetUrl(context.Context, daemon.AddByMagnetUrlTask) error { return nil }
func (emptyHandler) Remove(context.Context, daemon.RemoveTask) error                 { return nil }
func (emptyHandler) Pause(context.Context, daemon.PauseTask) error                   { return nil }
func (emptyHandler) PauseAll(context.Context, daemon.PauseAllTask) error             { return nil }
func (emptyHandler) Resume(context.Context, daemon.ResumeTask) error                 { return nil }
func (emptyHandler) ResumeAll(context.Context, daemon.ResumeAllTask) error           { return nil }
func (emptyHandler) Stop(context.Context, daemon.StopTask) error                     { return nil }
func (emptyHandler) StopAll(context.Context, daemon.StopAllTask) error               { return nil }
func (emptyHandler) Start(context.Context, daemon.StartTask) error                   { return nil }
func (emptyHandler) StartAll(context.Context, daemon.StartAllTask) error             { return nil }

func (emptyHandler) SetFilePriorities(context.Context, daemon.SetFilePrioritiesTask) error {
	return nil
}

func (emptyHandler) SetTransferRates(context.Context, daemon.SetTransferRatesTask) error {
	return nil
}

func (emptyHandler) SetLabel(context.Context, daemon.SetLabelTask) error       { return nil }
func (emptyHandler) SetTrackers(context.Context, daemon.SetTrackersTask) error { return nil }

func (emptyHandler) SetDownloadLocation(context.Context, daemon.SetDownloadLocationTask) error {
	return nil
}

func (emptyHandler) SetAlternativeMode(context.Context, daemon.SetAlternativeModeTask) error {
	return nil
}

func (emptyHandler) GetStats(context.Context, daemon.GetStatsTask) (models.Stats, error) {
	return models.Stats{}, nil
}

func (emptyHandler) ForceRecheck(context.Context, daemon.ForceRecheckTask) error { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
