package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.service"
)

type ScheduleMetrics struct {
	daysProcessed       metric.Int64Counter
	meetingsScheduled   metric.Int64Counter
	breakMinutes        metric.Int64Histogram
	dayDuration         metric.Float64Histogram
	weekDuration        metric.Float64Histogram
	invalidDurationSeen metric.Int64Counter
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	daysProcessed, err := meter.Int64Counter(
		"schedule_days_total",
		metric.WithDescription("Total number of days processed"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return nil, err
	}

	meetingsScheduled, err := meter.Int64Counter(
		"schedule_meetings_total",
		metric.WithDescription("Total number of meetings placed on a timeline"),
		metric.WithUnit("{meeting}"),
	)
	if err != nil {
		return nil, err
	}

	breakMinutes, err := meter.Int64Histogram(
		"schedule_break_minutes",
		metric.WithDescription("Break budget inserted per scheduled day"),
		metric.WithUnit("min"),
		metric.WithExplicitBucketBoundaries(
			0, 30, 60, 120, 180, 240, 300, 360, 420, 480,
		),
	)
	if err != nil {
		return nil, err
	}

	dayDuration, err := meter.Float64Histogram(
		"schedule_day_duration_seconds",
		metric.WithDescription("Time spent scheduling a single day"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01,
		),
	)
	if err != nil {
		return nil, err
	}

	weekDuration, err := meter.Float64Histogram(
		"schedule_week_duration_seconds",
		metric.WithDescription("Time spent scheduling a week"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1,
		),
	)
	if err != nil {
		return nil, err
	}

	invalidDurationSeen, err := meter.Int64Counter(
		"schedule_invalid_input_total",
		metric.WithDescription("Total number of days rejected for invalid meeting durations"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		daysProcessed:       daysProcessed,
		meetingsScheduled:   meetingsScheduled,
		breakMinutes:        breakMinutes,
		dayDuration:         dayDuration,
		weekDuration:        weekDuration,
		invalidDurationSeen: invalidDurationSeen,
	}, nil
}

func (m *ScheduleMetrics) RecordDayProcessed(ctx context.Context, outcome string) {
	m.daysProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordMeetingsScheduled(ctx context.Context, count int) {
	m.meetingsScheduled.Add(ctx, int64(count))
}

func (m *ScheduleMetrics) RecordBreakMinutes(ctx context.Context, minutes, meetingCount int) {
	m.breakMinutes.Record(ctx, int64(minutes), metric.WithAttributes(
		attribute.Int("meeting_count", meetingCount),
	))
}

func (m *ScheduleMetrics) RecordDayDuration(ctx context.Context, outcome string, duration time.Duration) {
	m.dayDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordWeekDuration(ctx context.Context, duration time.Duration) {
	m.weekDuration.Record(ctx, duration.Seconds())
}

func (m *ScheduleMetrics) RecordInvalidInput(ctx context.Context) {
	m.invalidDurationSeen.Add(ctx, 1)
}
