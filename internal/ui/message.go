package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTorrentsFetched MsgKind = iota
	MsgFilesFetched
	MsgTaskDone
)

type torrentsFetched struct {
	torrents []models.Torrent
	labels   []models.Label
	err      error
}

type filesFetched struct {
	torrent models.Torrent
	files   []models.TorrentFile
	err     error
}

// torrentsFetchedMsg is the constructor for [MsgTorrentsFetched]
func torrentsFetchedMsg(torrents []models.Torrent, labels []models.Label, err error) Msg {
	return Msg{kind: MsgTorrentsFetched, data: torrentsFetched{torrents, labels, err}}
}

// filesFetchedMsg is the constructor for [MsgFilesFetched]
func filesFetchedMsg(t models.Torrent, files []models.TorrentFile, err error) Msg {
	return Msg{kind: MsgFilesFetched, data: filesFetched{t, files, err}}
}

// taskDoneMsg is the constructor for [MsgTaskDone]
func taskDoneMsg(res daemon.Result) Msg {
	return Msg{kind: MsgTaskDone, data: res}
}
