package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tdx/internal/daemon"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/repositories"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/desertthunder/tdx/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The adapter and database are created on first use, so commands that need neither never touch them.
type Runner struct {
	config     *shared.Config
	configPath string
	daemonName string
	seed       int64
	registry   *daemon.Registry
	metrics    *prometheus.Registry
	logger     *log.Logger
	output     io.Writer
	openURL    func(string) error

	db      *sql.DB
	adapter daemon.Adapter
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config // Skips loading --config when set
	Registry *daemon.Registry
	Metrics  *prometheus.Registry
	DB       *sql.DB
	Logger   *log.Logger
	Output   io.Writer
	OpenURL  func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Metrics == nil {
		opts.Metrics = prometheus.NewRegistry()
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	return &Runner{
		config:   opts.Config,
		registry: opts.Registry,
		metrics:  opts.Metrics,
		db:       opts.DB,
		logger:   opts.Logger,
		output:   opts.Output,
		openURL:  opts.OpenURL,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, torrentsCommand, daemonsCommand, websearchCommand, statsCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before reads the global flags and loads the configuration.
//
// A missing config file falls back to the embedded defaults so that `setup config` can run first.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")
	r.daemonName = cmd.String("daemon")
	r.seed = cmd.Int64("seed")

	if r.config == nil {
		config, err := shared.LoadConfig(r.configPath)
		switch {
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
			config = shared.DefaultConfig()
		case err != nil:
			return ctx, err
		}
		r.config = config
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	} else {
		shared.SetLogLevel(r.logger, r.config.LogLevel())
	}
	return ctx, nil
}

// Close releases the database, if one was opened, and the adapter journaling into it.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	r.adapter = nil
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger used by the runner and by adapters created afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Database returns the migrated task and websearch database.
func (r *Runner) Database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

// Registry returns the adapter registry, creating the default one seeded from --seed.
func (r *Runner) Registry() *daemon.Registry {
	if r.registry == nil {
		r.registry = daemon.DefaultRegistry(daemon.DummyOpts{Seed: r.seed})
	}
	return r.registry
}

// Settings returns the settings of the daemon selected with --daemon.
func (r *Runner) Settings() (models.DaemonSettings, error) {
	return r.config.Daemon(r.daemonName)
}

// Adapter builds the adapter for the selected daemon, wrapped with metrics, throttling and the task journal.
func (r *Runner) Adapter() (daemon.Adapter, error) {
	if r.adapter != nil {
		return r.adapter, nil
	}

	settings, err := r.Settings()
	if err != nil {
		return nil, err
	}

	logger := shared.WithLogger(r.logger, "daemon", settings.Name)
	a, err := r.Registry().New(settings, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}

	a = daemon.Instrument(a, r.metrics)
	if t := r.config.Throttle; t.Enabled() {
		a = daemon.Throttle(a, daemon.NewLimiter(t.RequestsPerSecond, t.Burst))
	}

	if db, err := r.Database(); err != nil {
		logger.Warn("task journal disabled", "error", err)
	} else {
		a = daemon.Journal(a, repositories.NewTaskLogRepository(db), logger)
	}

	logger.Debug("adapter ready", "type", settings.Type, "address", settings.HumanReadableIdentifier())
	r.adapter = a
	return a, nil
}

// execute runs a single task and turns a failed result into an error.
func (r *Runner) execute(ctx context.Context, task daemon.Task) (daemon.Result, error) {
	a, err := r.Adapter()
	if err != nil {
		return nil, err
	}

	res := a.ExecuteTask(ctx, task)
	if err := daemon.Err(res); err != nil {
		return res, fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}
	return res, nil
}

// executeBatch runs tasks through the batch runner and prints one line per finished task.
func (r *Runner) executeBatch(ctx context.Context, ts []daemon.Task) error {
	a, err := r.Adapter()
	if err != nil {
		return err
	}

	opts := tasks.BatchOpts{Logger: r.logger}
	if t := r.config.Throttle; t.Enabled() {
		opts.RateLimit = t.RequestsPerSecond
	}

	prog := make(chan tasks.ProgressUpdate, 2*len(ts)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range prog {
			if u.Phase != tasks.Dispatch {
				r.writePlain("%s\n", u.Message)
			}
		}
	}()

	result, err := tasks.RunBatch(ctx, a, ts, opts, prog)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d tasks failed", shared.ErrTaskFailed, result.Failed, result.Total)
	}
	return nil
}

// findTorrents resolves hashes against the current torrent list, in the given order.
func (r *Runner) findTorrents(ctx context.Context, hashes []string) ([]models.Torrent, error) {
	a, err := r.Adapter()
	if err != nil {
		return nil, err
	}

	torrents, _, err := daemon.Retrieve(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTaskFailed, err)
	}

	byHash := make(map[string]models.Torrent, len(torrents))
	for _, t := range torrents {
		byHash[t.UniqueID] = t
	}

	found := make([]models.Torrent, 0, len(hashes))
	for _, h := range hashes {
		t, ok := byHash[h]
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrTorrentNotFound, h)
		}
		found = append(found, t)
	}
	return found, nil
}

func (r *Runner) write(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
