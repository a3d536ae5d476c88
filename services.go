package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yulian302/lfusys-services-requests/config"
	"github.com/Yulian302/lfusys-services-requests/handlers"
	"github.com/Yulian302/lfusys-services-requests/health"
	"github.com/Yulian302/lfusys-services-requests/lock"
	"github.com/Yulian302/lfusys-services-requests/queues"
	"github.com/Yulian302/lfusys-services-requests/services"
	"github.com/Yulian302/lfusys-services-requests/storage"
	"github.com/Yulian302/lfusys-services-requests/store"
)

type Services struct {
	Store      store.RequestStore
	Repository store.RequestRepository
	Storage    *storage.Provider
	Locker     lock.Locker

	Requests  services.RequestService
	Sweeper   *services.SweeperImpl
	Finalizer *queues.FinalizeReceiverImpl

	Handler *handlers.GrpcHandler
}

type Shutdowner interface {
	Shutdown(context.Context) error
}

func BuildServices(ctx context.Context, app *App) (*Services, error) {
	cfg := app.Config
	l := app.Logger

	requestStore, err := buildStore(app)
	if err != nil {
		return nil, err
	}

	provider, err := buildStorage(ctx, app)
	if err != nil {
		shutdownIfPossible(ctx, requestStore)
		return nil, err
	}

	var locker lock.Locker = lock.NewLocalLocker()
	if app.Redis != nil {
		locker = lock.NewRedisLocker(app.Redis, cfg.RedisConfig.LockTTL, l)
	}

	var notifier services.ReadyNotifier = services.NopReadyNotifier{}
	if name := cfg.QueuesConfig.ReadyQueueName; name != "" {
		notifier = queues.NewSQSReadyNotifierImpl(app.Sqs, cfg.AWSConfig.QueueURL(name), l)
	}

	repository := store.NewRequestRepositoryImpl(requestStore)
	requestSvc := services.NewRequestServiceImpl(repository, provider, notifier, *cfg.LimitsConfig, l)

	svcs := &Services{
		Store:      requestStore,
		Repository: repository,
		Storage:    provider,
		Locker:     locker,
		Requests:   requestSvc,
		Sweeper:    services.NewSweeperImpl(context.Background(), requestSvc, locker, cfg.LimitsConfig.SweepInterval, l),
		Handler:    handlers.NewGrpcHandler(requestSvc, l),
	}

	if name := cfg.QueuesConfig.FinalizeQueueName; name != "" {
		svcs.Finalizer = queues.NewFinalizeReceiverImpl(context.Background(), app.Sqs, requestSvc, cfg.AWSConfig.QueueURL(name), l)
	}

	return svcs, nil
}

func buildStore(app *App) (store.RequestStore, error) {
	cfg := app.Config
	switch cfg.RepositoryConfig.Backend {
	case config.RepositoryDynamoDB:
		return store.NewDynamoDbRequestStoreImpl(app.DynamoDB, cfg.DynamoDBConfig.RequestsTableName), nil
	case config.RepositorySQLite:
		return store.NewSQLiteRequestStoreImpl(cfg.RepositoryConfig.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown repository backend %q", cfg.RepositoryConfig.Backend)
	}
}

func buildStorage(ctx context.Context, app *App) (*storage.Provider, error) {
	cfg := app.Config.StorageConfig
	sink := storage.NewLoggingCleanupSink(app.Logger)

	fsEngine, err := storage.NewFSEngine(cfg.FSRoot, sink, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("init fs storage: %w", err)
	}

	var sequential storage.Engine
	switch cfg.Sequential {
	case config.StorageS3:
		sequential, err = storage.NewS3EngineImpl(ctx, app.S3, cfg.S3Bucket, sink, app.Logger)
	case config.StorageGCS:
		sequential, err = storage.NewGCSEngineImpl(ctx, app.GCS, cfg.GCSBucket, sink, app.Logger)
	case config.StorageFS:
		sequential = fsEngine
	default:
		err = fmt.Errorf("unknown sequential storage %q", cfg.Sequential)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.Sequential, err)
	}

	return storage.NewProvider(sequential, fsEngine), nil
}

// Start launches the background workers.
func (s *Services) Start() {
	s.Sweeper.Start()
	if s.Finalizer != nil {
		s.Finalizer.Start()
	}
}

func (s *Services) ReadinessChecks() []health.ReadinessCheck {
	checks := []health.ReadinessCheck{s.Store}
	if c, ok := s.Locker.(health.ReadinessCheck); ok {
		checks = append(checks, c)
	}
	return checks
}

func (s *Services) Shutdown(ctx context.Context) error {
	var errs []error

	if s.Finalizer != nil {
		if err := s.Finalizer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("finalize receiver: %w", err))
		}
	}

	if s.Sweeper != nil {
		if err := s.Sweeper.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("sweeper: %w", err))
		}
	}

	if err := shutdownIfPossible(ctx, s.Store); err != nil {
		errs = append(errs, fmt.Errorf("request store: %w", err))
	}

	return errors.Join(errs...)
}

func shutdownIfPossible(ctx context.Context, v any) error {
	if sh, ok := v.(Shutdowner); ok {
		return sh.Shutdown(ctx)
	}
	return nil
}
