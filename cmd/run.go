package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iq360/internal/app"
	"github.com/abhisek/iq360/internal/coaching"
	"github.com/abhisek/iq360/internal/config"
	"github.com/abhisek/iq360/internal/levelgen"
	"github.com/abhisek/iq360/internal/logging"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/store"
)

// runtime holds the dependencies shared by the commands.
type runtime struct {
	cfg       config.Config
	logger    *zap.Logger
	store     *store.Store
	snapshots store.SnapshotStore
	closers   []func() error
}

// openRuntime loads configuration, opens the log and the database, and
// selects the snapshot backend.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rt := &runtime{cfg: cfg, logger: logger}
	rt.closers = append(rt.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	dbPath, err := resolveDBPath(cmd, cfg.Store.DBPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(logger))
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.store = st
	rt.closers = append(rt.closers, st.Close)

	switch cfg.Store.Backend {
	case config.BackendRedis:
		rs, err := store.NewRedisStore(cmd.Context(), cfg.Store.Redis(), logger)
		if err != nil {
			// The session degrades to memory; the TUI shows a notice.
			logger.Warn("redis unavailable", zap.String("addr", cfg.Store.RedisAddr), zap.Error(err))
			fmt.Fprintln(os.Stderr, "Redis unavailable:", err)
			break
		}
		rt.snapshots = rs
		rt.closers = append(rt.closers, rs.Close)
	case config.BackendMemory:
		rt.snapshots = store.NewMemoryStore(logger)
	default:
		rt.snapshots = st.SnapshotStore(cfg.Store.SnapshotKey)
	}

	logger.Info("runtime ready",
		zap.String("db", dbPath),
		zap.String("store", cfg.Store.Backend),
		zap.String("llm_provider", cfg.LLM.Provider))
	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		_ = rt.closers[i]()
	}
}

// newMachine builds the session machine and its collaborators. The bool
// reports whether an LLM provider is configured; without one the machine
// still loads and browses progress but cannot start levels.
func (rt *runtime) newMachine(ctx context.Context) (*session.Machine, bool) {
	var (
		gen   levelgen.Generator
		eval  coaching.Evaluator
		ready bool
	)
	provider, err := newProvider(ctx, rt.cfg.LLM, rt.store.EventRepo(), rt.logger)
	if err != nil {
		rt.logger.Warn("LLM provider not configured", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Levels cannot be generated until an API key is set.")
	} else {
		gen = levelgen.New(provider, levelgen.DefaultConfig())
		eval = coaching.New(provider, coaching.DefaultConfig())
		ready = true
	}

	return session.New(gen, eval, rt.snapshots, session.WithLogger(rt.logger)), ready
}

// runApp opens the runtime, builds the session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	m, ready := rt.newMachine(ctx)
	rt.logger.Info("session started", zap.String("session_id", m.SessionID()))

	return app.Run(app.Options{Ctx: ctx, Machine: m, LLMReady: ready})
}
