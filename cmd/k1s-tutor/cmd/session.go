package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/engine"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/handlers"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/metrics"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/storage"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/uid"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
	memorystorage "github.com/MallardxGreen/K8-Learning-Simulator-sub000/storage/memory/pkg/storage"
	pebblestorage "github.com/MallardxGreen/K8-Learning-Simulator-sub000/storage/pebble/pkg/storage"
)

// newStorageFactory returns a factory knowing every built-in backend.
func newStorageFactory() *storage.RegistryFactory {
	return storage.NewFactory().
		Register(storage.StorageTypeMemory, memorystorage.New).
		Register(storage.StorageTypePebble, pebblestorage.New)
}

// newLogger builds a production logger at level, or a development logger
// when level is debug.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// defaultDBPath is where pebble sessions live when --db-path is not set.
func defaultDBPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "k1s-tutor")
	}
	return ".k1s-tutor"
}

// openBackend creates the session backend selected in config.
func openBackend(config *flags.TutorConfig) (storage.Backend, error) {
	factoryConfig := storage.FactoryConfig{
		Type: storage.StorageType(config.Storage),
		Path: config.DBPath,
	}
	if factoryConfig.Type == storage.StorageTypePebble && factoryConfig.Path == "" {
		factoryConfig.Path = defaultDBPath()
	}
	return newStorageFactory().CreateBackend(factoryConfig)
}

// session ties an engine to a stored cluster snapshot.
type session struct {
	name      string
	backend   storage.Backend
	engine    *engine.Engine
	store     v1.Store
	logger    *zap.Logger
	collector *metrics.Collector
	server    *http.Server
}

// openSession loads the named session, or starts a new one, and serves
// metrics if an address is configured.
func openSession(ctx context.Context, config *flags.TutorConfig) (*session, error) {
	logger, err := newLogger(config.LogLevel)
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(config)
	if err != nil {
		return nil, err
	}

	s := &session{
		name:      config.Session,
		backend:   backend,
		logger:    logger,
		collector: metrics.NewCollector(),
	}

	store, err := backend.Load(ctx, config.Session)
	ids := uid.NewSequence()
	switch {
	case err == nil:
		ids = uid.NewSequenceAfter(store)
		logger.Info("restored session",
			zap.String("session", config.Session),
			zap.String("backend", backend.Name()),
			zap.Int("resources", len(store)))
	case storage.IsNotFound(err):
		store = nil
		if !storage.IsPersistentBackend(storage.StorageType(config.Storage)) {
			logger.Debug("session is kept in memory only", zap.String("session", config.Session))
		}
	default:
		_ = backend.Close()
		return nil, fmt.Errorf("failed to load session %s: %w", config.Session, err)
	}

	s.engine, err = engine.New(
		engine.WithKeywords(keywords(config)...),
		engine.WithIDs(ids),
		engine.WithLogger(logger),
		engine.WithObserver(s.collector),
	)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	if store == nil && config.Bootstrap {
		store = s.engine.Bootstrap()
	}
	s.store = store

	if config.MetricsAddr != "" {
		s.serveMetrics(config.MetricsAddr)
	}
	return s, nil
}

func (s *session) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.collector.Handler())
	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	s.logger.Info("serving metrics", zap.String("addr", addr))
}

// execute runs line and persists the store when the command changed it.
func (s *session) execute(ctx context.Context, line string) (handlers.Result, error) {
	next, result := s.engine.ExecuteContext(ctx, s.store, line)
	if !result.Success {
		return result, nil
	}
	s.store = next

	if len(result.ResourcesCreated)+len(result.ResourcesDeleted)+len(result.ResourcesUpdated) == 0 {
		return result, nil
	}
	if err := s.backend.Save(ctx, s.name, s.store); err != nil {
		return result, fmt.Errorf("failed to save session %s: %w", s.name, err)
	}
	return result, nil
}

func (s *session) close(ctx context.Context) error {
	var errs []error
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		errs = append(errs, s.server.Shutdown(shutdownCtx))
	}
	errs = append(errs, s.backend.Close())
	_ = s.logger.Sync()
	return errors.Join(errs...)
}

// withSession opens the configured session for the duration of fn.
func withSession(ctx context.Context, config *flags.TutorConfig, fn func(*session) error) (err error) {
	s, err := openSession(ctx, config)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close session: %w", closeErr)
		}
	}()
	return fn(s)
}
