package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	RepositoryDynamoDB = "dynamodb"
	RepositorySQLite   = "sqlite"

	StorageS3  = "s3"
	StorageGCS = "gcs"
	StorageFS  = "fs"
)

type Config struct {
	Env         string `yaml:"env"`
	Tracing     bool   `yaml:"tracing"`
	TracingAddr string `yaml:"tracingAddr"`

	ServiceConfig    *ServiceConfig    `yaml:"service"`
	LimitsConfig     *LimitsConfig     `yaml:"limits"`
	RepositoryConfig *RepositoryConfig `yaml:"repository"`
	StorageConfig    *StorageConfig    `yaml:"storage"`
	AWSConfig        *AWSConfig        `yaml:"aws"`
	DynamoDBConfig   *DynamoDBConfig   `yaml:"dynamodb"`
	RedisConfig      *RedisConfig      `yaml:"redis"`
	QueuesConfig     *QueuesConfig     `yaml:"queues"`
	LoggingConfig    *LoggingConfig    `yaml:"logging"`
}

type ServiceConfig struct {
	RequestsGRPCAddr string        `yaml:"grpcAddr"`
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout"`
}

// LimitsConfig bounds what a single upload Request may declare.
type LimitsConfig struct {
	MaxFilesCount   int           `yaml:"maxFilesCount"`
	MaxFileSize     int64         `yaml:"maxFileSize"`
	MaxRequestSize  int64         `yaml:"maxRequestSize"`
	ChunkSize       int64         `yaml:"chunkSize"`
	MaxInactiveTime time.Duration `yaml:"maxInactiveTime"`
	SweepInterval   time.Duration `yaml:"sweepInterval"`
}

type RepositoryConfig struct {
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlitePath"`
}

type StorageConfig struct {
	Sequential         string `yaml:"sequential"`
	RandomWrite        string `yaml:"randomWrite"`
	FSRoot             string `yaml:"fsRoot"`
	S3Bucket           string `yaml:"s3Bucket"`
	GCSBucket          string `yaml:"gcsBucket"`
	GCSCredentialsFile string `yaml:"gcsCredentialsFile"`
}

type AWSConfig struct {
	Region    string `yaml:"region"`
	AccountID string `yaml:"accountId"`
	Endpoint  string `yaml:"endpoint"`
}

type DynamoDBConfig struct {
	RequestsTableName string `yaml:"requestsTableName"`
}

type RedisConfig struct {
	HOST     string        `yaml:"host"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	LockTTL  time.Duration `yaml:"lockTtl"`
}

type QueuesConfig struct {
	ReadyQueueName    string `yaml:"readyQueueName"`
	FinalizeQueueName string `yaml:"finalizeQueueName"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Env: "dev",
		ServiceConfig: &ServiceConfig{
			RequestsGRPCAddr: ":50052",
			ShutdownTimeout:  15 * time.Second,
		},
		LimitsConfig: &LimitsConfig{
			MaxFilesCount:   100,
			MaxFileSize:     100 * 1024 * 1024,
			MaxRequestSize:  1024 * 1024 * 1024,
			ChunkSize:       128 * 1024,
			MaxInactiveTime: 24 * time.Hour,
			SweepInterval:   10 * time.Minute,
		},
		RepositoryConfig: &RepositoryConfig{
			Backend:    RepositoryDynamoDB,
			SQLitePath: "./requests.db",
		},
		StorageConfig: &StorageConfig{
			Sequential:  StorageS3,
			RandomWrite: StorageFS,
			FSRoot:      "./storage",
		},
		AWSConfig: &AWSConfig{
			Region: "us-east-1",
		},
		DynamoDBConfig: &DynamoDBConfig{
			RequestsTableName: "requests",
		},
		RedisConfig: &RedisConfig{
			LockTTL: 30 * time.Second,
		},
		QueuesConfig:  &QueuesConfig{},
		LoggingConfig: &LoggingConfig{Level: "INFO"},
	}
}

// LoadConfig resolves configuration from, in increasing precedence: defaults,
// the first YAML file found, environment variables.
func LoadConfig() (Config, string, error) {
	cfg := Default()

	path, err := loadFromFile(&cfg)
	if err != nil {
		return Config{}, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if err := loadFromEnv(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, path, nil
}

func loadFromFile(cfg *Config) (string, error) {
	paths := []string{
		os.Getenv("REQUESTS_CONFIG_PATH"),
		"./config.yaml",
		"/etc/lfusys/requests.yaml",
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		restoreSections(cfg)
		return path, nil
	}

	return "built-in defaults", nil
}

// restoreSections puts back the defaults of sections a file set to null.
func restoreSections(cfg *Config) {
	d := Default()
	if cfg.ServiceConfig == nil {
		cfg.ServiceConfig = d.ServiceConfig
	}
	if cfg.LimitsConfig == nil {
		cfg.LimitsConfig = d.LimitsConfig
	}
	if cfg.RepositoryConfig == nil {
		cfg.RepositoryConfig = d.RepositoryConfig
	}
	if cfg.StorageConfig == nil {
		cfg.StorageConfig = d.StorageConfig
	}
	if cfg.AWSConfig == nil {
		cfg.AWSConfig = d.AWSConfig
	}
	if cfg.DynamoDBConfig == nil {
		cfg.DynamoDBConfig = d.DynamoDBConfig
	}
	if cfg.RedisConfig == nil {
		cfg.RedisConfig = d.RedisConfig
	}
	if cfg.QueuesConfig == nil {
		cfg.QueuesConfig = d.QueuesConfig
	}
	if cfg.LoggingConfig == nil {
		cfg.LoggingConfig = d.LoggingConfig
	}
}

func loadFromEnv(cfg *Config) error {
	var errs []error

	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	int64v := func(key string, dst *int64) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("ENV", &cfg.Env)
	if v := os.Getenv("TRACING"); v != "" {
		cfg.Tracing = v == "true" || v == "1"
	}
	str("TRACING_ADDR", &cfg.TracingAddr)

	str("REQUESTS_GRPC_ADDR", &cfg.ServiceConfig.RequestsGRPCAddr)
	duration("SHUTDOWN_TIMEOUT", &cfg.ServiceConfig.ShutdownTimeout)

	integer("MAX_FILES_COUNT", &cfg.LimitsConfig.MaxFilesCount)
	int64v("MAX_FILE_SIZE", &cfg.LimitsConfig.MaxFileSize)
	int64v("MAX_REQUEST_SIZE", &cfg.LimitsConfig.MaxRequestSize)
	int64v("CHUNK_SIZE", &cfg.LimitsConfig.ChunkSize)
	duration("MAX_INACTIVE_TIME", &cfg.LimitsConfig.MaxInactiveTime)
	duration("SWEEP_INTERVAL", &cfg.LimitsConfig.SweepInterval)

	str("REPOSITORY_BACKEND", &cfg.RepositoryConfig.Backend)
	str("SQLITE_PATH", &cfg.RepositoryConfig.SQLitePath)

	str("STORAGE_SEQUENTIAL", &cfg.StorageConfig.Sequential)
	str("STORAGE_RANDOM_WRITE", &cfg.StorageConfig.RandomWrite)
	str("STORAGE_FS_ROOT", &cfg.StorageConfig.FSRoot)
	str("S3_BUCKET_NAME", &cfg.StorageConfig.S3Bucket)
	str("GCS_BUCKET_NAME", &cfg.StorageConfig.GCSBucket)
	str("GCS_CREDENTIALS_FILE", &cfg.StorageConfig.GCSCredentialsFile)

	str("AWS_REGION", &cfg.AWSConfig.Region)
	str("AWS_ACCOUNT_ID", &cfg.AWSConfig.AccountID)
	str("AWS_ENDPOINT", &cfg.AWSConfig.Endpoint)

	str("DYNAMODB_REQUESTS_TABLE_NAME", &cfg.DynamoDBConfig.RequestsTableName)

	str("REDIS_HOST", &cfg.RedisConfig.HOST)
	str("REDIS_PASSWORD", &cfg.RedisConfig.Password)
	integer("REDIS_DB", &cfg.RedisConfig.DB)
	duration("REDIS_LOCK_TTL", &cfg.RedisConfig.LockTTL)

	str("READY_QUEUE_NAME", &cfg.QueuesConfig.ReadyQueueName)
	str("FINALIZE_QUEUE_NAME", &cfg.QueuesConfig.FinalizeQueueName)

	str("LOG_LEVEL", &cfg.LoggingConfig.Level)

	return errors.Join(errs...)
}

func (c Config) Validate() error {
	l := c.LimitsConfig
	if l.MaxFilesCount <= 0 {
		return fmt.Errorf("maxFilesCount must be positive, got %d", l.MaxFilesCount)
	}
	if l.MaxFileSize <= 0 || l.MaxRequestSize <= 0 || l.ChunkSize <= 0 {
		return errors.New("maxFileSize, maxRequestSize and chunkSize must be positive")
	}
	if l.MaxInactiveTime <= 0 || l.SweepInterval <= 0 {
		return errors.New("maxInactiveTime and sweepInterval must be positive")
	}

	switch c.RepositoryConfig.Backend {
	case RepositoryDynamoDB:
		if err := c.AWSConfig.Validate(); err != nil {
			return err
		}
		if c.DynamoDBConfig.RequestsTableName == "" {
			return errors.New("dynamodb requests table name is required")
		}
	case RepositorySQLite:
		if c.RepositoryConfig.SQLitePath == "" {
			return errors.New("sqlite path is required")
		}
	default:
		return fmt.Errorf("unknown repository backend %q", c.RepositoryConfig.Backend)
	}

	if c.StorageConfig.RandomWrite != StorageFS {
		return fmt.Errorf("random-write storage must be %q, got %q", StorageFS, c.StorageConfig.RandomWrite)
	}
	switch c.StorageConfig.Sequential {
	case StorageS3:
		if err := c.AWSConfig.Validate(); err != nil {
			return err
		}
		if c.StorageConfig.S3Bucket == "" {
			return errors.New("s3 bucket is required for s3 storage")
		}
	case StorageGCS:
		if c.StorageConfig.GCSBucket == "" {
			return errors.New("gcs bucket is required for gcs storage")
		}
	case StorageFS:
	default:
		return fmt.Errorf("unknown sequential storage %q", c.StorageConfig.Sequential)
	}
	if c.StorageConfig.FSRoot == "" {
		return errors.New("fs storage root is required")
	}

	return nil
}

// UsesAWS reports whether any configured component needs an AWS client.
func (c Config) UsesAWS() bool {
	return c.RepositoryConfig.Backend == RepositoryDynamoDB ||
		c.StorageConfig.Sequential == StorageS3 ||
		c.QueuesConfig.ReadyQueueName != "" ||
		c.QueuesConfig.FinalizeQueueName != ""
}

func (a *AWSConfig) Validate() error {
	if strings.TrimSpace(a.Region) == "" {
		return errors.New("aws region is required")
	}
	return nil
}

// QueueURL builds the FIFO queue URL for name, honouring a custom endpoint.
func (a *AWSConfig) QueueURL(name string) string {
	if a.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s.fifo", strings.TrimRight(a.Endpoint, "/"), a.AccountID, name)
	}
	return fmt.Sprintf("https://sqs.%s.amazonaws.com/%s/%s.fifo", a.Region, a.AccountID, name)
}
