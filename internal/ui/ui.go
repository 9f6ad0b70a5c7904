package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TorrentListView ViewState = iota
	FileListView
	ConfirmRemoveView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	adapter     daemon.Adapter
	logger      *log.Logger
	width       int
	height      int
	torrentList list.Model
	torrents    []models.Torrent
	labels      []models.Label
	fileList    list.Model
	selected    *models.Torrent
	status      string
	failed      bool
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model that drives adapter. logger may be nil.
func NewModel(ctx context.Context, adapter daemon.Adapter, logger *log.Logger) *Model {
	return &Model{
		ctx:         ctx,
		view:        TorrentListView,
		adapter:     adapter,
		logger:      logger,
		torrentList: newList(nil, "Torrents"),
		fileList:    newList(nil, "Files"),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

// Init initializes the TUI by retrieving the torrents of the daemon.
func (m *Model) Init() tea.Cmd {
	return m.fetchTorrents()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.torrentList.SetSize(msg.Width-4, msg.Height-8)
		m.fileList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TorrentListView:
			return m.handleTorrentListKeys(msg)
		case FileListView:
			return m.handleFileListKeys(msg)
		case ConfirmRemoveView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgTorrentsFetched:
		data := msg.data.(torrentsFetched)
		if data.err != nil {
			if m.torrents == nil {
				m.err = data.err
			}
			m.setStatus(fmt.Sprintf("Refresh failed: %v", data.err), true)
			return m, nil
		}
		m.err = nil
		m.torrents = data.torrents
		m.labels = data.labels
		items := make([]list.Item, len(data.torrents))
		for i, t := range data.torrents {
			items[i] = torrentItem{torrent: t}
		}
		cmd := m.torrentList.SetItems(items)
		m.torrentList.Title = fmt.Sprintf("Torrents on %s", m.adapter.Settings().Name)
		return m, cmd

	case MsgFilesFetched:
		data := msg.data.(filesFetched)
		if data.err != nil {
			m.setStatus(fmt.Sprintf("Could not load files of %s: %v", data.torrent.Name, data.err), true)
			return m, nil
		}
		items := make([]list.Item, len(data.files))
		for i, f := range data.files {
			items[i] = fileItem{file: f}
		}
		m.fileList = newList(items, fmt.Sprintf("Files in '%s'", data.torrent.Name))
		m.fileList.SetSize(m.width-4, m.height-8)
		m.view = FileListView
		return m, nil

	case MsgTaskDone:
		res := msg.data.(daemon.Result)
		task := res.Task()
		if err := daemon.Err(res); err != nil {
			m.setStatus(fmt.Sprintf("%s failed: %v", task.Method(), err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s done", task.Method()), false)
		return m, m.fetchTorrents()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress R to retry, q to quit", m.err))
	}

	switch m.view {
	case TorrentListView:
		return m.renderTorrentList()
	case FileListView:
		return m.renderFileList()
	case ConfirmRemoveView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleTorrentListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.torrentList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.torrentList, cmd = m.torrentList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchTorrents()
	}

	t, ok := m.selectedTorrent()
	if ok {
		switch {
		case key.Matches(msg, m.keys.enter):
			return m, m.fetchFiles(t)
		case key.Matches(msg, m.keys.pause):
			return m, m.runTask(daemon.NewPauseTask(t))
		case key.Matches(msg, m.keys.resume):
			return m, m.runTask(daemon.NewResumeTask(t))
		case key.Matches(msg, m.keys.stop):
			return m, m.runTask(daemon.NewStopTask(t))
		case key.Matches(msg, m.keys.start):
			return m, m.runTask(daemon.NewStartTask(t))
		case key.Matches(msg, m.keys.remove):
			m.selected = &t
			m.view = ConfirmRemoveView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.torrentList, cmd = m.torrentList.Update(msg)
	return m, cmd
}

func (m *Model) handleFileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = TorrentListView
		return m, nil
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		t := *m.selected
		m.selected = nil
		m.view = TorrentListView
		return m, m.runTask(daemon.NewRemoveTask(t, false))
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.selected = nil
		m.view = TorrentListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TorrentListView:
		m.torrentList, cmd = m.torrentList.Update(msg)
	case FileListView:
		m.fileList, cmd = m.fileList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedTorrent() (models.Torrent, bool) {
	item, ok := m.torrentList.SelectedItem().(torrentItem)
	if !ok {
		return models.Torrent{}, false
	}
	return item.torrent, true
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
	if m.logger == nil {
		return
	}
	if failed {
		m.logger.Warn(s)
	} else {
		m.logger.Info(s)
	}
}

func (m *Model) fetchTorrents() tea.Cmd {
	return func() tea.Msg {
		torrents, labels, err := daemon.Retrieve(m.ctx, m.adapter)
		return torrentsFetchedMsg(torrents, labels, err)
	}
}

func (m *Model) fetchFiles(t models.Torrent) tea.Cmd {
	return func() tea.Msg {
		files, err := daemon.FileList(m.ctx, m.adapter, t)
		return filesFetchedMsg(t, files, err)
	}
}

func (m *Model) runTask(task daemon.Task) tea.Cmd {
	return func() tea.Msg {
		return taskDoneMsg(m.adapter.ExecuteTask(m.ctx, task))
	}
}

func (m *Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return styles.err.Render(m.status)
	}
	return styles.ok.Render(m.status)
}

func (m *Model) renderTorrentList() string {
	helpKeys := []key.Binding{
		m.keys.enter, m.keys.pause, m.keys.resume, m.keys.stop, m.keys.start,
		m.keys.remove, m.keys.refresh, m.keys.quit,
	}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.torrentList.View(), m.statusLine(), helpView)
}

func (m *Model) renderFileList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.fileList.View(), m.statusLine(), helpView)
}

func (m *Model) renderConfirm() string {
	if m.selected == nil {
		return ""
	}
	title := styles.title.Render(fmt.Sprintf("Remove '%s'?", m.selected.Name))
	info := fmt.Sprintf("\nHash: %s\nSize: %s\nDownloaded data is kept.\n", m.selected.UniqueID, formatter.FormatSize(m.selected.TotalSize))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
