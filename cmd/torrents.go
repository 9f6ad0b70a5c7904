package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/repositories"
	"github.com/desertthunder/tdx/internal/shared"
)

// TorrentsList retrieves the torrents of the daemon and prints or exports them.
func (r *Runner) TorrentsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	a, err := r.Adapter()
	if err != nil {
		return err
	}

	torrents, _, err := daemon.Retrieve(ctx, a)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}
	torrents = filterTorrents(torrents, cmd.String("label"), cmd.String("status"))
	r.logger.Debugf("retrieved %d torrents", len(torrents))

	if out := cmd.String("output"); out != "" {
		path, err := formatter.WriteExport(torrents, format, out)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d torrents to %s\n", len(torrents), path)
		return nil
	}

	data, err := formatter.Torrents(format, torrents)
	if err != nil {
		return err
	}
	return r.write(data)
}

func filterTorrents(torrents []models.Torrent, label, status string) []models.Torrent {
	if label == "" && status == "" {
		return torrents
	}

	out := make([]models.Torrent, 0, len(torrents))
	for _, t := range torrents {
		if label != "" && t.Label != label {
			continue
		}
		if status != "" && !strings.EqualFold(t.Status.String(), status) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TorrentsLabels prints the labels known to the daemon.
func (r *Runner) TorrentsLabels(ctx context.Context, cmd *cli.Command) error {
	a, err := r.Adapter()
	if err != nil {
		return err
	}

	_, labels, err := daemon.Retrieve(ctx, a)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}
	return r.write(formatter.LabelsToText(labels))
}

// TorrentsDetails prints a single torrent with its trackers.
func (r *Runner) TorrentsDetails(ctx context.Context, cmd *cli.Command) error {
	t, err := r.torrentArg(ctx, cmd.StringArg("hash"))
	if err != nil {
		return err
	}

	a, err := r.Adapter()
	if err != nil {
		return err
	}
	details, err := daemon.Details(ctx, a, t)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}
	return r.write(formatter.TorrentToText(t, &details))
}

// TorrentsFiles prints the files of a torrent.
func (r *Runner) TorrentsFiles(ctx context.Context, cmd *cli.Command) error {
	t, err := r.torrentArg(ctx, cmd.StringArg("hash"))
	if err != nil {
		return err
	}

	files, err := r.fileList(ctx, t)
	if err != nil {
		return err
	}
	return r.write(formatter.FilesToText(files))
}

// TorrentsAdd adds a torrent from exactly one of --file, --url or --magnet.
func (r *Runner) TorrentsAdd(ctx context.Context, cmd *cli.Command) error {
	var task daemon.Task
	var given int
	if cmd.IsSet("file") {
		task = daemon.NewAddByFileTask(cmd.String("file"))
		given++
	}
	if cmd.IsSet("url") {
		task = daemon.NewAddByUrlTask(cmd.String("url"), cmd.String("title"))
		given++
	}
	if cmd.IsSet("magnet") {
		task = daemon.NewAddByMagnetUrlTask(cmd.String("magnet"))
		given++
	}

	switch {
	case given == 0:
		return fmt.Errorf("%w: one of --file, --url or --magnet must be provided", shared.ErrMissingArgument)
	case given > 1:
		return fmt.Errorf("%w: only one of --file, --url or --magnet may be provided", shared.ErrInvalidArgument)
	}

	if _, err := r.execute(ctx, task); err != nil {
		return err
	}
	r.writePlain("✓ Torrent added\n")
	return nil
}

// TorrentsRemove removes torrents, optionally with their data.
func (r *Runner) TorrentsRemove(ctx context.Context, cmd *cli.Command) error {
	withData := cmd.Bool("with-data")
	return r.eachTorrent(ctx, cmd, func(t models.Torrent) daemon.Task {
		return daemon.NewRemoveTask(t, withData)
	})
}

func (r *Runner) TorrentsPause(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.executeAll(ctx, daemon.NewPauseAllTask())
	}
	return r.eachTorrent(ctx, cmd, func(t models.Torrent) daemon.Task { return daemon.NewPauseTask(t) })
}

func (r *Runner) TorrentsResume(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.executeAll(ctx, daemon.NewResumeAllTask())
	}
	return r.eachTorrent(ctx, cmd, func(t models.Torrent) daemon.Task { return daemon.NewResumeTask(t) })
}

func (r *Runner) TorrentsStart(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.executeAll(ctx, daemon.NewStartAllTask())
	}
	return r.eachTorrent(ctx, cmd, func(t models.Torrent) daemon.Task { return daemon.NewStartTask(t) })
}

func (r *Runner) TorrentsStop(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.executeAll(ctx, daemon.NewStopAllTask())
	}
	return r.eachTorrent(ctx, cmd, func(t models.Torrent) daemon.Task { return daemon.NewStopTask(t) })
}

func (r *Runner) TorrentsRecheck(ctx context.Context, cmd *cli.Command) error {
	return r.eachTorrent(ctx, cmd, func(t models.Torrent) daemon.Task { return daemon.NewForceRecheckTask(t) })
}

// TorrentsLabel sets the label of a torrent. An empty label clears it.
func (r *Runner) TorrentsLabel(ctx context.Context, cmd *cli.Command) error {
	t, err := r.torrentArg(ctx, cmd.StringArg("hash"))
	if err != nil {
		return err
	}

	label := cmd.StringArg("label")
	if _, err := r.execute(ctx, daemon.NewSetLabelTask(t, label)); err != nil {
		return err
	}
	r.writePlain("✓ Label of %s set to %q\n", t.Name, label)
	return nil
}

// TorrentsPriority sets the priority of the given files of a torrent.
func (r *Runner) TorrentsPriority(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 3 {
		return fmt.Errorf("%w: usage: priority <hash> <priority> <file-key>...", shared.ErrMissingArgument)
	}

	priority, err := models.ParsePriority(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	t, err := r.torrentArg(ctx, args[0])
	if err != nil {
		return err
	}

	all, err := r.fileList(ctx, t)
	if err != nil {
		return err
	}
	files, err := selectFiles(all, args[2:])
	if err != nil {
		return err
	}

	if _, err := r.execute(ctx, daemon.NewSetFilePrioritiesTask(t, files, priority)); err != nil {
		return err
	}
	r.writePlain("✓ %d files of %s set to %s\n", len(files), t.Name, priority)
	return nil
}

func selectFiles(files []models.TorrentFile, keys []string) ([]models.TorrentFile, error) {
	byKey := make(map[string]models.TorrentFile, len(files))
	for _, f := range files {
		byKey[f.Key] = f
	}

	selected := make([]models.TorrentFile, 0, len(keys))
	for _, k := range keys {
		f, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, k)
		}
		selected = append(selected, f)
	}
	return selected, nil
}

// TorrentsRates sets the global transfer limits. Flags that are not given are left unchanged.
func (r *Runner) TorrentsRates(ctx context.Context, cmd *cli.Command) error {
	var up, down *int64
	if cmd.IsSet("up") {
		v := cmd.Int64("up")
		up = &v
	}
	if cmd.IsSet("down") {
		v := cmd.Int64("down")
		down = &v
	}
	if up == nil && down == nil {
		return fmt.Errorf("%w: --up or --down must be provided", shared.ErrMissingArgument)
	}

	if _, err := r.execute(ctx, daemon.NewSetTransferRatesTask(up, down)); err != nil {
		return err
	}
	r.writePlain("✓ Transfer rates updated\n")
	return nil
}

// TorrentsTrackers replaces the trackers of a torrent.
func (r *Runner) TorrentsTrackers(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: trackers <hash> <url>...", shared.ErrMissingArgument)
	}

	t, err := r.torrentArg(ctx, args[0])
	if err != nil {
		return err
	}
	if _, err := r.execute(ctx, daemon.NewSetTrackersTask(t, args[1:])); err != nil {
		return err
	}
	r.writePlain("✓ %d trackers set for %s\n", len(args)-1, t.Name)
	return nil
}

// TorrentsLocation moves the data of a torrent to a new directory.
func (r *Runner) TorrentsLocation(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: dir", shared.ErrMissingArgument)
	}

	t, err := r.torrentArg(ctx, cmd.StringArg("hash"))
	if err != nil {
		return err
	}
	if _, err := r.execute(ctx, daemon.NewSetDownloadLocationTask(t, dir)); err != nil {
		return err
	}
	r.writePlain("✓ %s moved to %s\n", t.Name, dir)
	return nil
}

// TorrentsHistory prints the task journal, newest first.
func (r *Runner) TorrentsHistory(ctx context.Context, cmd *cli.Command) error {
	db, err := r.Database()
	if err != nil {
		return err
	}
	repo := repositories.NewTaskLogRepository(db)

	if d := cmd.Duration("prune"); d > 0 {
		n, err := repo.Prune(time.Now().Add(-d))
		if err != nil {
			return err
		}
		r.logger.Info("pruned task journal", "removed", n, "older_than", d)
	}

	filter := repositories.TaskLogFilter{Target: cmd.String("hash"), Limit: cmd.Int("limit")}
	if !cmd.Bool("all-daemons") {
		settings, err := r.Settings()
		if err != nil {
			return err
		}
		filter.DaemonName = settings.Name
	}

	records, err := repo.Recent(filter)
	if err != nil {
		return err
	}
	return r.write(formatter.TaskRecordsToText(records))
}

func (r *Runner) fileList(ctx context.Context, t models.Torrent) ([]models.TorrentFile, error) {
	a, err := r.Adapter()
	if err != nil {
		return nil, err
	}
	files, err := daemon.FileList(ctx, a, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}
	return files, nil
}

// torrentArg resolves a single hash argument.
func (r *Runner) torrentArg(ctx context.Context, hash string) (models.Torrent, error) {
	if hash == "" {
		return models.Torrent{}, fmt.Errorf("%w: hash", shared.ErrMissingArgument)
	}
	found, err := r.findTorrents(ctx, []string{hash})
	if err != nil {
		return models.Torrent{}, err
	}
	return found[0], nil
}

// eachTorrent builds one task per hash argument. A single task runs directly, more go through the batch runner.
func (r *Runner) eachTorrent(ctx context.Context, cmd *cli.Command, build func(models.Torrent) daemon.Task) error {
	hashes := cmd.Args().Slice()
	if len(hashes) == 0 {
		return fmt.Errorf("%w: at least one hash", shared.ErrMissingArgument)
	}

	torrents, err := r.findTorrents(ctx, hashes)
	if err != nil {
		return err
	}

	if len(torrents) == 1 {
		task := build(torrents[0])
		if _, err := r.execute(ctx, task); err != nil {
			return err
		}
		r.writePlain("✓ %s %s\n", task.Method(), torrents[0].Name)
		return nil
	}

	ts := make([]daemon.Task, len(torrents))
	for i, t := range torrents {
		ts[i] = build(t)
	}
	return r.executeBatch(ctx, ts)
}

func (r *Runner) executeAll(ctx context.Context, task daemon.Task) error {
	if _, err := r.execute(ctx, task); err != nil {
		return err
	}
	r.writePlain("✓ %s\n", task.Method())
	return nil
}
