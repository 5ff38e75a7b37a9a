package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"systemos/internal/config"
	"systemos/internal/content"
	"systemos/internal/engine"
	"systemos/internal/logging"
	"systemos/internal/storage"
	"systemos/internal/ui"
)

// app bundles everything a command needs for one engine session.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *storage.DB
	eng       *engine.Engine
	snapshots *storage.SnapshotRepo
	events    *storage.EventRepo
}

func loadConfig() (*config.Config, error) {
	dir := dataDir
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return config.Load(dir)
}

// openApp loads config, opens storage and runs engine.Open, which repairs the
// snapshot and reconciles any missed days.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.Path,
	})
	if err != nil {
		return nil, nil, err
	}

	dsn := cfg.DSN
	if dsn == "" && dataDir != "" {
		dsn = filepath.Join(cfg.Dir, "sysos.db")
	}
	db, err := storage.Open(ctx, dsn)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}

	snapshots := storage.NewSnapshotRepo(db)
	opts := engine.Options{
		UserID:           cfg.UserID,
		Location:         loc,
		Persistence:      snapshots,
		Logger:           logger,
		GeneratorTimeout: cfg.Generator.Timeout,
	}
	if cfg.GeneratorEnabled() {
		gen, err := content.New(content.Config{
			APIKey:  cfg.Generator.APIKey,
			Model:   cfg.Generator.Model,
			BaseURL: cfg.Generator.BaseURL,
		}, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts.Generator = gen
	}

	eng, err := engine.Open(ctx, opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Debug("session opened", zap.String("user", cfg.UserID), zap.String("dialect", string(db.Dialect)))

	return &app{
		cfg:       cfg,
		log:       logger,
		db:        db,
		eng:       eng,
		snapshots: snapshots,
		events:    storage.NewEventRepo(db),
	}, cleanup, nil
}

// flush appends pending engine events to the event log and prints them.
// Warnings are skipped on screen since the command already reports the error.
func (a *app) flush(ctx context.Context, w io.Writer) error {
	events := a.eng.DrainEvents()
	if len(events) == 0 {
		return nil
	}
	for _, ev := range events {
		if ev.Kind == engine.EventWarning {
			continue
		}
		fmt.Fprintln(w, ui.EventLine(ev))
	}
	if err := a.events.Append(ctx, a.cfg.UserID, events); err != nil {
		return fmt.Errorf("append event log: %w", err)
	}
	return nil
}

// appendEvents is the board's event sink.
func (a *app) appendEvents(ctx context.Context, events []engine.Event) error {
	return a.events.Append(ctx, a.cfg.UserID, events)
}

// run opens a session, calls fn and flushes the events fn produced, even when
// fn fails.
func run(ctx context.Context, w io.Writer, fn func(a *app) error) error {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	runErr := fn(a)
	if err := a.flush(ctx, w); err != nil {
		a.log.Error("flush events failed", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

var errAmbiguousID = errors.New("ambiguous id prefix")

// resolveID expands a unique prefix of one of ids. Exact matches win.
func resolveID(arg string, ids []string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("id is required")
	}
	var match string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", errAmbiguousID, arg)
			}
			match = id
		}
	}
	if match == "" {
		// let the engine report the unknown id
		return arg, nil
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func questIDs(quests []engine.Quest) []string {
	ids := make([]string, len(quests))
	for i, q := range quests {
		ids[i] = q.ID
	}
	return ids
}
