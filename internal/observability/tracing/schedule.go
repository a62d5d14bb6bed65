package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-break-scheduler/internal/service/schedule"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartWeekSpan(ctx context.Context, dayCount, parallelism int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.week",
		trace.WithAttributes(
			attribute.Int("week.day_count", dayCount),
			attribute.Int("week.parallelism", parallelism),
		),
	)
}

func StartDaySpan(ctx context.Context, day string, meetingCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.day",
		trace.WithAttributes(
			attribute.String("day", day),
			attribute.Int("day.meeting_count", meetingCount),
		),
	)
}

func StartRecorderSpan(ctx context.Context, backend string, recordCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.recorder."+backend,
		trace.WithAttributes(
			attribute.Int("recorder.record_count", recordCount),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordDayResult(span trace.Span, state string, totalMeetingMinutes, breakBudgetMinutes, breakCount int, err error) {
	span.SetAttributes(
		attribute.String("day.state", state),
		attribute.Int("day.total_meeting_minutes", totalMeetingMinutes),
		attribute.Int("day.break_budget_minutes", breakBudgetMinutes),
		attribute.Int("day.break_count", breakCount),
	)
	recordStatus(span, err)
}

func RecordWeekResult(span trace.Span, scheduledCount, rejectedCount int, err error) {
	span.SetAttributes(
		attribute.Int("week.scheduled_count", scheduledCount),
		attribute.Int("week.rejected_count", rejectedCount),
	)
	recordStatus(span, err)
}

func RecordError(span trace.Span, err error) {
	recordStatus(span, err)
}

func recordStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
