package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/MrfksIv/morf-stream/internal/controller"
	catalogredis "github.com/MrfksIv/morf-stream/internal/repository/catalogcache/redis"
	conninmemory "github.com/MrfksIv/morf-stream/internal/repository/connection/inmemory"
	participantinmemory "github.com/MrfksIv/morf-stream/internal/repository/participant/inmemory"
	sessioninmemory "github.com/MrfksIv/morf-stream/internal/repository/session/inmemory"
	videostorage "github.com/MrfksIv/morf-stream/internal/repository/videostorage/s3"
	"github.com/MrfksIv/morf-stream/internal/service"
	"github.com/MrfksIv/morf-stream/pkg/ctxlogger"
)

type AppConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	LogLevel      string `json:"log_level"`
	StaticDir     string `json:"static_dir"`
	SendQueueSize int    `json:"send_queue_size"`

	S3Endpoint        string `json:"s3_endpoint"`
	S3Region          string `json:"s3_region"`
	S3Bucket          string `json:"s3_bucket"`
	S3AccessKeyId     string `json:"-"`
	S3SecretAccessKey string `json:"-"`
	S3UsePathStyle    bool   `json:"s3_use_path_style"`
	PublicUrlBase     string `json:"public_url_base"`
	VideoPrefix       string `json:"video_prefix"`
	SubtitlePrefix    string `json:"subtitle_prefix"`

	RedisHost       string        `json:"redis_host"`
	RedisPort       int           `json:"redis_port"`
	RedisPassword   string        `json:"-"`
	CatalogCacheTTL time.Duration `json:"catalog_cache_ttl"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be in range 1-65535")
	}
	if cfg.S3Bucket == "" {
		return fmt.Errorf("s3 bucket must be provided")
	}
	if cfg.PublicUrlBase == "" {
		return fmt.Errorf("public url base must be provided")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)

	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyId != "" && cfg.S3SecretAccessKey != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyId, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		return fmt.Errorf("failed to load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.S3Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		})
	}
	if cfg.S3UsePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	s3Client := awss3.NewFromConfig(awsCfg, s3Opts...)

	var catalogCache service.CatalogCache
	if cfg.RedisHost != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
		})
		if err := rc.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rc.Close()

		catalogCache = catalogredis.NewRepo(rc, cfg.CatalogCacheTTL)
	}

	participantRepo := participantinmemory.NewRepo()
	connRepo := conninmemory.NewRepo()
	sessionRepo := sessioninmemory.NewRepo()
	storageRepo := videostorage.NewRepo(s3Client, cfg.S3Bucket)

	roomService := service.New(participantRepo, connRepo, sessionRepo, storageRepo, catalogCache, &service.Config{
		PublicUrlBase:  cfg.PublicUrlBase,
		VideoPrefix:    cfg.VideoPrefix,
		SubtitlePrefix: cfg.SubtitlePrefix,
	})
	controller := controller.NewController(roomService, &controller.Config{
		StaticDir:     cfg.StaticDir,
		SendQueueSize: cfg.SendQueueSize,
	}, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
