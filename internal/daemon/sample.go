package daemon

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tdx/internal/models"
)

const (
	sampleCount = 25
	sampleFiles = 25
	gib         = 1024 * 1024 * 1024
	mib         = 1024 * 1024

	dummyErrorMessage = "Dummy error"
)

var (
	sampleNames    = []string{"Documentary ", "Book ", "CD Image ", "Mix tape ", "App "}
	sampleLabels   = []string{"docs", "books", "isos", "music", "software"}
	sampleStatuses = []models.TorrentStatus{
		models.StatusSeeding, models.StatusDownloading, models.StatusPaused, models.StatusQueued,
		models.StatusDownloading, models.StatusSeeding, models.StatusError,
	}
	sampleFilePriorities = []models.Priority{
		models.PriorityNormal, models.PriorityHigh, models.PriorityHigh, models.PriorityLow, models.PriorityNormal,
	}
	sampleTrackers = []string{"udp://tracker.com/announce:80", "https://torrents.org/announce:443"}
	sampleErrors   = []string{"Trackers not working.", "Files not available."}
)

// Sample is a generated set of torrents and labels.
type Sample struct {
	Torrents []models.Torrent
	Labels   []models.Label
}

// GenerateSample builds the 25 sample torrents of the dummy daemon. It is pure: the same seed and now
// always produce the same sample.
func GenerateSample(seed int64, now time.Time, kind models.Daemon) Sample {
	rnd := rand.New(rand.NewSource(seed))
	added := now.Add(-7 * 24 * time.Hour)

	torrents := make([]models.Torrent, 0, sampleCount)
	for i := range sampleCount {
		name := sampleNames[i%len(sampleNames)] + strconv.Itoa(i)
		status := sampleStatuses[i%len(sampleStatuses)]
		downloading := status == models.StatusDownloading

		size := int64(gib * float64(i+1) * (0.1 + rnd.Float64()))
		var left int64
		if downloading {
			left = int64(float64(size) * rnd.Float64())
		}
		downloaded := size - left

		var seeders, leechers int
		var rateDown, rateUp int64
		if downloading {
			seeders = 1 + rnd.Intn(16)
			leechers = 1 + rnd.Intn(16)
			rateDown = 1 + int64(mib*float64(i+1)*rnd.Float64())
		}
		if downloading || status == models.StatusSeeding {
			rateUp = 1 + int64(mib*float64(i+1)*rnd.Float64())
		}

		eta := int64(-1)
		switch {
		case downloading:
			eta = left / rateDown
		case status == models.StatusSeeding:
			eta = 0
		}

		var errMsg string
		if status == models.StatusError {
			errMsg = dummyErrorMessage
		}

		torrents = append(torrents, models.Torrent{
			ID:                int64(i),
			UniqueID:          "torrent_" + strconv.Itoa(i),
			Name:              name,
			Status:            status,
			LocationDir:       "/downloads/" + strings.ReplaceAll(name, " ", "_"),
			RateDownload:      rateDown,
			RateUpload:        rateUp,
			SeedersConnected:  seeders,
			SeedersKnown:      seeders * 2,
			LeechersConnected: leechers,
			LeechersKnown:     leechers * 2,
			ETA:               eta,
			DownloadedEver:    downloaded,
			UploadedEver:      int64(float64(downloaded) * 2 * rnd.Float64()),
			TotalSize:         size,
			PartDone:          float64(downloaded) / float64(size),
			Available:         1,
			Label:             sampleLabels[i%len(sampleLabels)],
			DateAdded:         added,
			Error:             errMsg,
			Daemon:            kind,
		})
	}

	labels := make([]models.Label, 0, len(sampleLabels))
	for _, l := range sampleLabels {
		labels = append(labels, models.Label{Name: l, Count: 0})
	}

	return Sample{Torrents: torrents, Labels: labels}
}

// sampleFileList synthesizes the files of t, each holding an equal share of its size and progress.
func sampleFileList(t models.Torrent) []models.TorrentFile {
	files := make([]models.TorrentFile, 0, sampleFiles)
	for i := range sampleFiles {
		rel := "file_" + strconv.Itoa(i) + ".ext"
		files = append(files, models.TorrentFile{
			Key:          "file_" + strconv.Itoa(i),
			Name:         t.Name + " file " + strconv.Itoa(i),
			RelativePath: rel,
			FullPath:     t.LocationDir + "/" + rel,
			TotalSize:    t.TotalSize / sampleFiles,
			Downloaded:   t.DownloadedEver / sampleFiles,
			Priority:     sampleFilePriorities[i%len(sampleFilePriorities)],
		})
	}
	return files
}

func sampleDetails(t models.Torrent) models.TorrentDetails {
	d := models.TorrentDetails{Trackers: append([]string(nil), sampleTrackers...)}
	if t.Status == models.StatusError {
		d.Errors = append([]string(nil), sampleErrors...)
	}
	return d
}
