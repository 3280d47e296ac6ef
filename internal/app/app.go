package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/framelist/internal/config"
	"github.com/five82/framelist/internal/prefs"
	"github.com/five82/framelist/internal/session"
	"github.com/five82/framelist/internal/state"
	"github.com/five82/framelist/internal/ui"
)

// Options configure the framelist application.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/framelist/prefs.toml
	Debug     bool

	// OrderingOverride keeps Config.Ordering even when a saved ordering exists.
	OrderingOverride bool
}

const (
	preflightTimeout = 3 * time.Second
	demoFrames       = 8
	demoLatency      = 150 * time.Millisecond
)

// Run boots the framelist TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	logger, closer, err := newLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("ignoring unreadable preferences", "path", prefsPath, "error", err)
	}
	ordering := cfg.Ordering
	if saved, ok := userPrefs.ListOrdering(); ok && !opts.OrderingOverride {
		ordering = saved
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return fmt.Errorf("init session backend: %w", err)
	}

	preflightCtx, cancelPreflight := context.WithTimeout(ctx, preflightTimeout)
	job, err := backend.FetchJob(preflightCtx, cfg.Job)
	cancelPreflight()
	if err != nil {
		return fmt.Errorf("session server %s unavailable: %w", cfg.Server, err)
	}
	if job.Frames > 0 && cfg.Frame >= job.Frames {
		return fmt.Errorf("frame %d out of range for job %s (%d frames)", cfg.Frame, cfg.Job, job.Frames)
	}
	if len(cfg.Filters) > 0 {
		if err := backend.UpdateFilters(ctx, cfg.Job, cfg.Filters); err != nil {
			return fmt.Errorf("apply configured filters: %w", err)
		}
	}

	store := state.NewStore(cfg.Frame)
	store.SetFrames(job.Frames)

	logger.Info("starting framelist",
		"server", cfg.Server,
		"job", cfg.Job,
		"frame", cfg.Frame,
		"frames", job.Frames,
		"ordering", ordering,
		"demo", cfg.Demo,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// Populate the store before the first frame is drawn.
	refresh(gctx, store, backend, cfg.Job, logger)

	g.Go(func() error {
		return runPoller(gctx, store, backend, cfg.Job, cfg.Poll, logger)
	})
	g.Go(func() error {
		defer cancel()
		return ui.Run(gctx, ui.Options{
			Backend:   backend,
			Store:     store,
			Collapse:  &state.Collapse{},
			Session:   cfg.Job,
			Ordering:  ordering,
			Filters:   cfg.Filters,
			PollTick:  time.Second,
			ThemeName: userPrefs.Theme,
			PrefsPath: prefsPath,
			LogPath:   cfg.LogFile,
			Logger:    logger,
		})
	})

	if err := g.Wait(); err != nil {
		logger.Error("framelist stopped with error", "error", err)
		return err
	}
	logger.Info("framelist stopped")
	return nil
}

func newBackend(cfg config.Config) (session.Backend, error) {
	if cfg.Demo {
		return session.NewDemo(demoFrames, demoLatency), nil
	}
	return session.NewClient(cfg.Server)
}
