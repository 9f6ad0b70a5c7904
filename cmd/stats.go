package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// Stats prints daemon-wide state, a torrent breakdown by status and the task metrics of this run.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	a, err := r.Adapter()
	if err != nil {
		return err
	}
	settings := a.Settings()

	torrents, _, err := daemon.Retrieve(ctx, a)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%s)", settings.Name, settings.Type))
	r.writePlain("Torrents:   %d\n", len(torrents))

	counts := make(map[models.TorrentStatus]int)
	var down, up int64
	for _, t := range torrents {
		counts[t.Status]++
		down += t.RateDownload
		up += t.RateUpload
	}
	for _, s := range []models.TorrentStatus{
		models.StatusDownloading, models.StatusSeeding, models.StatusPaused, models.StatusQueued,
		models.StatusWaiting, models.StatusChecking, models.StatusError, models.StatusUnknown,
	} {
		if counts[s] > 0 {
			r.writePlain("  %-12s %d\n", s.String()+":", counts[s])
		}
	}
	r.writePlain("Download:   %s\n", formatter.FormatRate(down))
	r.writePlain("Upload:     %s\n", formatter.FormatRate(up))

	stats, err := daemon.Stats(ctx, a)
	switch {
	case errors.Is(err, daemon.ErrMethodUnsupported):
		r.logger.Debug("daemon does not report stats", "error", err)
	case err != nil:
		return fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	default:
		r.writePlain("Alt. mode:  %t\n", stats.AlternativeModeEnabled)
		r.writePlain("Directory:  %s\n", stats.DownloadDir)
	}

	families, err := r.metrics.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	r.writePlainln("Task metrics:")
	return r.write(formatter.MetricsToText(families))
}
