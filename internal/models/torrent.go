package models

import (
	"fmt"
	"strings"
	"time"
)

// TorrentStatus is the transfer state of a torrent as reported by a daemon.
type TorrentStatus string

const (
	StatusWaiting     TorrentStatus = "Waiting"
	StatusChecking    TorrentStatus = "Checking"
	StatusDownloading TorrentStatus = "Downloading"
	StatusSeeding     TorrentStatus = "Seeding"
	StatusPaused      TorrentStatus = "Paused"
	StatusQueued      TorrentStatus = "Queued"
	StatusError       TorrentStatus = "Error"
	StatusUnknown     TorrentStatus = "Unknown"
)

func (s TorrentStatus) String() string { return string(s) }

// Priority is the download priority of a single file within a torrent.
type Priority int

const (
	PriorityOff Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityOff:
		return "Off"
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	default:
		return ""
	}
}

// ParsePriority converts a case-insensitive priority name into a [Priority].
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return PriorityOff, nil
	case "low":
		return PriorityLow, nil
	case "normal":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityOff, fmt.Errorf("unknown priority %q", s)
	}
}

// Torrent is a single torrent known to a daemon.
//
// PartDone and DownloadedEver/TotalSize describe the same progress and are kept consistent by adapters.
// A torrent in [StatusError] always carries a non-empty Error message.
type Torrent struct {
	ID                int64         `json:"id" yaml:"id"`
	UniqueID          string        `json:"hash" yaml:"hash"`
	Name              string        `json:"name" yaml:"name"`
	Status            TorrentStatus `json:"status" yaml:"status"`
	LocationDir       string        `json:"location" yaml:"location"`
	RateDownload      int64         `json:"rate_download" yaml:"rate_download"`
	RateUpload        int64         `json:"rate_upload" yaml:"rate_upload"`
	SeedersConnected  int           `json:"seeders_connected" yaml:"seeders_connected"`
	SeedersKnown      int           `json:"seeders_known" yaml:"seeders_known"`
	LeechersConnected int           `json:"leechers_connected" yaml:"leechers_connected"`
	LeechersKnown     int           `json:"leechers_known" yaml:"leechers_known"`
	ETA               int64         `json:"eta" yaml:"eta"` // seconds, -1 when undefined
	DownloadedEver    int64         `json:"downloaded_ever" yaml:"downloaded_ever"`
	UploadedEver      int64         `json:"uploaded_ever" yaml:"uploaded_ever"`
	TotalSize         int64         `json:"total_size" yaml:"total_size"`
	PartDone          float64       `json:"part_done" yaml:"part_done"`
	Available         float64       `json:"available" yaml:"available"`
	Label             string        `json:"label,omitempty" yaml:"label,omitempty"`
	DateAdded         time.Time     `json:"date_added" yaml:"date_added"`
	DateDone          *time.Time    `json:"date_done,omitempty" yaml:"date_done,omitempty"`
	Error             string        `json:"error,omitempty" yaml:"error,omitempty"`
	Daemon            Daemon        `json:"daemon" yaml:"daemon"`
}

// PeersConnected returns the number of seeders and leechers currently connected.
func (t *Torrent) PeersConnected() int {
	return t.SeedersConnected + t.LeechersConnected
}

// Ratio returns the upload/download ratio, or 0 when nothing was downloaded yet.
func (t *Torrent) Ratio() float64 {
	if t.DownloadedEver <= 0 {
		return 0
	}
	return float64(t.UploadedEver) / float64(t.DownloadedEver)
}

// IsFinished reports whether all data of the torrent has been downloaded.
func (t *Torrent) IsFinished() bool {
	return t.PartDone >= 1
}

func (t *Torrent) CanPause() bool {
	return t.Status == StatusDownloading || t.Status == StatusSeeding
}

func (t *Torrent) CanResume() bool {
	return t.Status == StatusPaused
}

func (t *Torrent) CanStop() bool {
	return t.Status == StatusDownloading || t.Status == StatusSeeding ||
		t.Status == StatusPaused || t.Status == StatusWaiting || t.Status == StatusChecking
}

func (t *Torrent) CanStart() bool {
	return t.Status == StatusQueued || t.Status == StatusError
}

// MimicPause puts the torrent in [StatusPaused] and clears its transfer rates.
func (t *Torrent) MimicPause() {
	t.Status = StatusPaused
	t.RateDownload = 0
	t.RateUpload = 0
}

// MimicResume moves the torrent to seeding when complete and to downloading otherwise.
func (t *Torrent) MimicResume() {
	if t.IsFinished() {
		t.Status = StatusSeeding
	} else {
		t.Status = StatusDownloading
	}
	t.Error = ""
}

// MimicStart behaves as [Torrent.MimicResume].
func (t *Torrent) MimicStart() {
	t.MimicResume()
}

// MimicStop puts the torrent back in the queue and clears its transfer rates.
func (t *Torrent) MimicStop() {
	t.Status = StatusQueued
	t.RateDownload = 0
	t.RateUpload = 0
}

func (t *Torrent) MimicNewLabel(label string) {
	t.Label = label
}

// TorrentFile is a single file within a torrent.
type TorrentFile struct {
	Key          string   `json:"key" yaml:"key"`
	Name         string   `json:"name" yaml:"name"`
	RelativePath string   `json:"relative_path" yaml:"relative_path"`
	FullPath     string   `json:"full_path" yaml:"full_path"`
	TotalSize    int64    `json:"total_size" yaml:"total_size"`
	Downloaded   int64    `json:"downloaded" yaml:"downloaded"`
	Priority     Priority `json:"priority" yaml:"priority"`
}

// PartDone returns the downloaded fraction of the file in [0,1].
func (f *TorrentFile) PartDone() float64 {
	if f.TotalSize <= 0 {
		return 0
	}
	return float64(f.Downloaded) / float64(f.TotalSize)
}

func (f *TorrentFile) MimicPriority(p Priority) {
	f.Priority = p
}

// Label groups torrents. Count is -1 or 0 when the daemon does not report it.
type Label struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// TorrentDetails holds the tracker URLs of a torrent and, only for errored torrents, the error messages.
type TorrentDetails struct {
	Trackers []string `json:"trackers" yaml:"trackers"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Stats is daemon-wide state.
type Stats struct {
	AlternativeModeEnabled bool   `json:"alternative_mode_enabled" yaml:"alternative_mode_enabled"`
	DownloadDir            string `json:"download_dir" yaml:"download_dir"`
}
