package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	ServiceName  string
	Environment  string
	LogLevel     slog.Level
	OTLPEndpoint string
	GCPProjectID string
	Schedule     *ScheduleConfig
}

func Load() (*Config, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "break-scheduler"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "dev"
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	scheduleConfig, err := LoadScheduleConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:  serviceName,
		Environment:  env,
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		GCPProjectID: projectID,
		Schedule:     scheduleConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
