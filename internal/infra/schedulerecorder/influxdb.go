//go:build !gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability/tracing"
)

const dayResultMeasurement = "schedule_day_result"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordDayResults(ctx context.Context, records []domain.ScheduleResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, span := tracing.StartRecorderSpan(ctx, "influxdb", len(records))
	defer span.End()

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, dayResultPoint(record))
	}

	// Write failures are logged and swallowed; analytics must not fail a run.
	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		tracing.RecordError(span, err)
		slog.WarnContext(ctx, "failed to write schedule results to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func dayResultPoint(record domain.ScheduleResultRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	pointTime := record.ComputedAt
	if pointTime.IsZero() {
		pointTime = time.Now()
	}

	return influxdb2.NewPoint(
		dayResultMeasurement,
		map[string]string{
			"run_id":  runID,
			"day":     record.Day,
			"outcome": record.Outcome,
		},
		map[string]any{
			"meeting_count":         record.MeetingCount,
			"total_meeting_minutes": record.TotalMeetingMinutes,
			"break_budget_minutes":  record.BreakBudgetMinutes,
			"break_count":           record.BreakCount,
			"end_minute":            record.EndMinute,
		},
		pointTime,
	)
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
