package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	gcs "cloud.google.com/go/storage"
	pb "github.com/Yulian302/lfusys-services-requests/api/gen"
	"github.com/Yulian302/lfusys-services-requests/config"
	"github.com/Yulian302/lfusys-services-requests/health"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type App struct {
	Server       *grpc.Server
	HealthServer *grpchealth.Server

	DynamoDB *dynamodb.Client
	S3       *s3.Client
	GCS      *gcs.Client
	Redis    *redis.Client
	Sqs      *sqs.Client

	Config     config.Config
	ConfigPath string
	AwsConfig  aws.Config

	Services       *Services
	TracerProvider *trace.TracerProvider
	Logger         logging.Logger

	cancel context.CancelFunc
}

func SetupApp(ctx context.Context) (*App, error) {
	cfg, path, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	appLogger := logging.NewSlogLogger(logging.CreateAppLogger(cfg.Env, cfg.LoggingConfig.Level))

	app := &App{
		Config:     cfg,
		ConfigPath: path,
		Logger:     appLogger,
	}

	if cfg.UsesAWS() {
		awsCfg, err := initAWS(ctx, *cfg.AWSConfig)
		if err != nil {
			return nil, err
		}
		app.AwsConfig = awsCfg

		if cfg.RepositoryConfig.Backend == config.RepositoryDynamoDB {
			app.DynamoDB = initDynamo(awsCfg)
		}
		if cfg.StorageConfig.Sequential == config.StorageS3 {
			app.S3 = initS3(awsCfg, cfg.AWSConfig.Endpoint != "")
		}
		if cfg.QueuesConfig.ReadyQueueName != "" || cfg.QueuesConfig.FinalizeQueueName != "" {
			app.Sqs = initSqs(awsCfg)
		}
	}

	if cfg.StorageConfig.Sequential == config.StorageGCS {
		client, err := initGCS(ctx, *cfg.StorageConfig)
		if err != nil {
			return nil, err
		}
		app.GCS = client
	}

	if cfg.RedisConfig.HOST != "" {
		app.Redis = initRedis(*cfg.RedisConfig)
	}

	if cfg.Tracing {
		tp, err := initTracer(ctx, "requests", cfg.TracingAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to start tracing: %w", err)
		}
		appLogger.Info("tracing enabled", "addr", cfg.TracingAddr)

		app.TracerProvider = tp
	}

	app.Services, err = BuildServices(ctx, app)
	if err != nil {
		app.Shutdown(ctx)
		return nil, err
	}

	appLogger.Info("application configured",
		"config", path,
		"repository", cfg.RepositoryConfig.Backend,
		"storage", cfg.StorageConfig.Sequential,
	)
	return app, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	a.createHealthServer(ctx)

	l, err := net.Listen("tcp", a.Config.ServiceConfig.RequestsGRPCAddr)
	if err != nil {
		return err
	}

	a.RegisterHandlers()
	a.Services.Start()

	a.Logger.Info("grpc server started", "addr", a.Config.ServiceConfig.RequestsGRPCAddr)
	return a.Server.Serve(l)
}

func (a *App) createHealthServer(ctx context.Context) {
	a.HealthServer = grpchealth.NewServer()

	// start pessimistic
	a.HealthServer.SetServingStatus(
		"",
		healthpb.HealthCheckResponse_NOT_SERVING,
	)
	healthpb.RegisterHealthServer(a.Server, a.HealthServer)

	checks := a.Services.ReadinessChecks()

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.HealthServer.SetServingStatus("", readiness(ctx, checks, a.Logger))
			}
		}
	}()
}

func readiness(ctx context.Context, checks []health.ReadinessCheck, l logging.Logger) healthpb.HealthCheckResponse_ServingStatus {
	for _, c := range checks {
		cctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		err := c.IsReady(cctx)
		cancel()

		if err != nil {
			l.Warn("readiness check failed", "check", c.Name(), "error", err)
			return healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	return healthpb.HealthCheckResponse_SERVING
}

func initAWS(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

func initDynamo(cfg aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg)
}

func initS3(cfg aws.Config, pathStyle bool) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
	})
}

func initSqs(cfg aws.Config) *sqs.Client {
	return sqs.NewFromConfig(cfg)
}

func initGCS(ctx context.Context, cfg config.StorageConfig) (*gcs.Client, error) {
	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return client, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.HOST,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func initTracer(ctx context.Context, serviceName, addr string) (*trace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(addr),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("starting graceful shutdown")

	if a.cancel != nil {
		a.cancel()
	}

	if a.Server != nil {
		done := make(chan struct{})
		go func() {
			a.Server.GracefulStop()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			a.Server.Stop() // force
		}
	}

	var errs []error

	if a.Services != nil {
		if err := a.Services.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("services: %w", err))
		}
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	if a.GCS != nil {
		if err := a.GCS.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gcs: %w", err))
		}
	}

	if a.TracerProvider != nil {
		if err := a.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		a.Logger.Error("graceful shutdown finished with errors", "error", err)
		return err
	}
	a.Logger.Info("graceful shutdown complete")
	return nil
}

func (a *App) RegisterHandlers() {
	pb.RegisterRequestsServer(a.Server, a.Services.Handler)
}
