package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MrfksIv/morf-stream/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 8080,
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	staticDir = configVar[string]{
		envKey:       "SERVER_STATIC_DIR",
		flagKey:      "static-dir",
		defaultValue: "./client",
	}
	sendQueueSize = configVar[int]{
		envKey:       "SERVER_SEND_QUEUE_SIZE",
		flagKey:      "send-queue-size",
		defaultValue: 32,
	}
	s3Endpoint = configVar[string]{
		envKey:       "S3_ENDPOINT",
		flagKey:      "s3-endpoint",
		defaultValue: "",
	}
	s3Region = configVar[string]{
		envKey:       "S3_REGION",
		flagKey:      "s3-region",
		defaultValue: "auto",
	}
	s3Bucket = configVar[string]{
		envKey:       "S3_BUCKET",
		flagKey:      "s3-bucket",
		defaultValue: "",
	}
	s3AccessKeyId = configVar[string]{
		envKey:       "S3_ACCESS_KEY_ID",
		flagKey:      "s3-access-key-id",
		defaultValue: "",
	}
	s3SecretAccessKey = configVar[string]{
		envKey:       "S3_SECRET_ACCESS_KEY",
		flagKey:      "s3-secret-access-key",
		defaultValue: "",
	}
	s3UsePathStyle = configVar[bool]{
		envKey:       "S3_USE_PATH_STYLE",
		flagKey:      "s3-use-path-style",
		defaultValue: false,
	}
	publicUrlBase = configVar[string]{
		envKey:       "S3_PUBLIC_URL",
		flagKey:      "public-url-base",
		defaultValue: "",
	}
	videoPrefix = configVar[string]{
		envKey:       "S3_VIDEO_PREFIX",
		flagKey:      "video-prefix",
		defaultValue: "movies/",
	}
	subtitlePrefix = configVar[string]{
		envKey:       "S3_SUBTITLE_PREFIX",
		flagKey:      "subtitle-prefix",
		defaultValue: "subtitles/",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
	catalogCacheTTL = configVar[time.Duration]{
		envKey:       "CATALOG_CACHE_TTL",
		flagKey:      "catalog-cache-ttl",
		defaultValue: 5 * time.Minute,
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(staticDir.flagKey, staticDir.defaultValue, "Directory with static frontend assets")
	pflag.Int(sendQueueSize.flagKey, sendQueueSize.defaultValue, "Outbound message queue size per connection")
	pflag.String(s3Endpoint.flagKey, s3Endpoint.defaultValue, "S3-compatible endpoint url")
	pflag.String(s3Region.flagKey, s3Region.defaultValue, "S3 region")
	pflag.String(s3Bucket.flagKey, s3Bucket.defaultValue, "S3 bucket with videos")
	pflag.String(s3AccessKeyId.flagKey, s3AccessKeyId.defaultValue, "S3 access key id")
	pflag.String(s3SecretAccessKey.flagKey, s3SecretAccessKey.defaultValue, "S3 secret access key")
	pflag.Bool(s3UsePathStyle.flagKey, s3UsePathStyle.defaultValue, "Use path-style S3 addressing")
	pflag.String(publicUrlBase.flagKey, publicUrlBase.defaultValue, "Public base url for bucket objects")
	pflag.String(videoPrefix.flagKey, videoPrefix.defaultValue, "Bucket prefix with video files")
	pflag.String(subtitlePrefix.flagKey, subtitlePrefix.defaultValue, "Bucket prefix with subtitle files")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host (empty disables the catalog cache)")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Duration(catalogCacheTTL.flagKey, catalogCacheTTL.defaultValue, "Catalog cache expiration")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(staticDir.flagKey, staticDir.envKey)
	viper.BindEnv(sendQueueSize.flagKey, sendQueueSize.envKey)
	viper.BindEnv(s3Endpoint.flagKey, s3Endpoint.envKey)
	viper.BindEnv(s3Region.flagKey, s3Region.envKey)
	viper.BindEnv(s3Bucket.flagKey, s3Bucket.envKey)
	viper.BindEnv(s3AccessKeyId.flagKey, s3AccessKeyId.envKey)
	viper.BindEnv(s3SecretAccessKey.flagKey, s3SecretAccessKey.envKey)
	viper.BindEnv(s3UsePathStyle.flagKey, s3UsePathStyle.envKey)
	viper.BindEnv(publicUrlBase.flagKey, publicUrlBase.envKey)
	viper.BindEnv(videoPrefix.flagKey, videoPrefix.envKey)
	viper.BindEnv(subtitlePrefix.flagKey, subtitlePrefix.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)
	viper.BindEnv(catalogCacheTTL.flagKey, catalogCacheTTL.envKey)

	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(staticDir.flagKey, staticDir.defaultValue)
	viper.SetDefault(sendQueueSize.flagKey, sendQueueSize.defaultValue)
	viper.SetDefault(s3Endpoint.flagKey, s3Endpoint.defaultValue)
	viper.SetDefault(s3Region.flagKey, s3Region.defaultValue)
	viper.SetDefault(s3Bucket.flagKey, s3Bucket.defaultValue)
	viper.SetDefault(s3AccessKeyId.flagKey, s3AccessKeyId.defaultValue)
	viper.SetDefault(s3SecretAccessKey.flagKey, s3SecretAccessKey.defaultValue)
	viper.SetDefault(s3UsePathStyle.flagKey, s3UsePathStyle.defaultValue)
	viper.SetDefault(publicUrlBase.flagKey, publicUrlBase.defaultValue)
	viper.SetDefault(videoPrefix.flagKey, videoPrefix.defaultValue)
	viper.SetDefault(subtitlePrefix.flagKey, subtitlePrefix.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)
	viper.SetDefault(catalogCacheTTL.flagKey, catalogCacheTTL.defaultValue)

	config := &app.AppConfig{
		Host:              viper.GetString(host.flagKey),
		Port:              viper.GetInt(port.flagKey),
		LogLevel:          viper.GetString(logLevel.flagKey),
		StaticDir:         viper.GetString(staticDir.flagKey),
		SendQueueSize:     viper.GetInt(sendQueueSize.flagKey),
		S3Endpoint:        viper.GetString(s3Endpoint.flagKey),
		S3Region:          viper.GetString(s3Region.flagKey),
		S3Bucket:          viper.GetString(s3Bucket.flagKey),
		S3AccessKeyId:     viper.GetString(s3AccessKeyId.flagKey),
		S3SecretAccessKey: viper.GetString(s3SecretAccessKey.flagKey),
		S3UsePathStyle:    viper.GetBool(s3UsePathStyle.flagKey),
		PublicUrlBase:     viper.GetString(publicUrlBase.flagKey),
		VideoPrefix:       viper.GetString(videoPrefix.flagKey),
		SubtitlePrefix:    viper.GetString(subtitlePrefix.flagKey),
		RedisHost:         viper.GetString(redisHost.flagKey),
		RedisPort:         viper.GetInt(redisPort.flagKey),
		RedisPassword:     viper.GetString(redisPassword.flagKey),
		CatalogCacheTTL:   viper.GetDuration(catalogCacheTTL.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
