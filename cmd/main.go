package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/KasumiMercury/primind-break-scheduler/internal/config"
	"github.com/KasumiMercury/primind-break-scheduler/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/primind-break-scheduler/internal/infra/weekfile"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/apportion"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/budget"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/normalize"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/render"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/schedule"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, schedulerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	week, err := weekfile.Load(cfg.Schedule.WeekFile)
	if err != nil {
		slog.Error("failed to load week",
			slog.String("path", cfg.Schedule.WeekFile),
			slog.String("error", err.Error()),
		)
		return 1
	}

	quantum := cfg.Schedule.QuantumMinutes
	scheduleService := schedule.NewService(
		normalize.NewNormalizer(),
		budget.NewCalculator(quantum),
		apportion.NewAllocator(quantum),
		render.NewRenderer(),
		resultRecorder,
		scheduleMetrics,
		cfg.Schedule.Parallelism,
	)

	runID := uuid.NewString()
	slog.InfoContext(ctx, "scheduling week",
		slog.String("run_id", runID),
		slog.Int("day_count", len(week.Days)),
		slog.Int("quantum_minutes", quantum),
		slog.Int("parallelism", cfg.Schedule.Parallelism),
	)

	outcomes, err := scheduleService.ScheduleWeek(ctx, week)
	if err != nil {
		slog.ErrorContext(ctx, "failed to schedule week",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := printLines(os.Stdout, schedule.RenderWeek(outcomes)); err != nil {
		slog.Error("failed to write schedule", slog.String("error", err.Error()))
		return 1
	}

	scheduleService.RecordWeek(ctx, runID, outcomes)

	return 0
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
