package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
)

var (
	_ list.Item = torrentItem{}
	_ list.Item = fileItem{}
)

// torrentItem wraps [models.Torrent] to implement [list.Item].
type torrentItem struct {
	torrent models.Torrent
}

func (i torrentItem) FilterValue() string { return i.torrent.Name }
func (i torrentItem) Title() string       { return i.torrent.Name }
func (i torrentItem) Description() string {
	t := i.torrent
	parts := []string{
		styles.Status(t.Status).Render(t.Status.String()),
		formatter.FormatPercent(t.PartDone),
		fmt.Sprintf("↓ %s ↑ %s", formatter.FormatRate(t.RateDownload), formatter.FormatRate(t.RateUpload)),
	}
	if t.Label != "" {
		parts = append(parts, t.Label)
	}
	if t.Error != "" {
		parts = append(parts, styles.err.Render(t.Error))
	}
	return strings.Join(parts, " • ")
}

// fileItem wraps [models.TorrentFile] to implement [list.Item].
type fileItem struct {
	file models.TorrentFile
}

func (i fileItem) FilterValue() string { return i.file.Name }
func (i fileItem) Title() string       { return i.file.Name }
func (i fileItem) Description() string {
	return fmt.Sprintf("%s of %s • %s • %s",
		formatter.FormatSize(i.file.Downloaded),
		formatter.FormatSize(i.file.TotalSize),
		formatter.FormatPercent(i.file.PartDone()),
		i.file.Priority,
	)
}
