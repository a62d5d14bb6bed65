package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/apportion"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/budget"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/normalize"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/render"
)

const defaultParallelism = 7

type Service struct {
	normalizer      *normalize.Normalizer
	budgetCalc      *budget.Calculator
	allocator       *apportion.Allocator
	renderer        *render.Renderer
	resultRecorder  domain.ScheduleResultRecorder
	scheduleMetrics *metrics.ScheduleMetrics
	parallelism     int
}

func NewService(
	normalizer *normalize.Normalizer,
	budgetCalc *budget.Calculator,
	allocator *apportion.Allocator,
	renderer *render.Renderer,
	resultRecorder domain.ScheduleResultRecorder,
	scheduleMetrics *metrics.ScheduleMetrics,
	parallelism int,
) *Service {
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &Service{
		normalizer:      normalizer,
		budgetCalc:      budgetCalc,
		allocator:       allocator,
		renderer:        renderer,
		resultRecorder:  resultRecorder,
		scheduleMetrics: scheduleMetrics,
		parallelism:     parallelism,
	}
}

// ScheduleDay runs one day through normalization, the feasibility gate, the
// break budget, apportionment and rendering. An unschedulable day is a
// normal outcome; the only error is invalid input.
func (s *Service) ScheduleDay(ctx context.Context, input domain.DayInput) (*domain.DayOutcome, error) {
	start := time.Now()

	ctx, span := tracing.StartDaySpan(ctx, input.Day, len(input.Durations))
	defer span.End()

	outcome := domain.NewDayOutcome(input.Day)

	normalized, err := s.normalizer.Normalize(input.Durations)
	if err != nil {
		err = fmt.Errorf("%s: %w", input.Day, err)
		if s.scheduleMetrics != nil && errors.Is(err, domain.ErrInvalidDuration) {
			s.scheduleMetrics.RecordInvalidInput(ctx)
		}
		tracing.RecordDayResult(span, outcome.State.String(), 0, 0, 0, err)
		slog.WarnContext(ctx, "invalid day input",
			slog.String("day", input.Day),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := outcome.Feed(normalized.Meetings, normalized.TotalMeetingMinutes); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	if !normalized.Feasible {
		if err := outcome.Reject(); err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		s.finishDay(ctx, span, outcome, start)
		return outcome, nil
	}

	meetingCount := len(normalized.Meetings)
	budgetMinutes := s.budgetCalc.EffectiveBudget(normalized.TotalMeetingMinutes, meetingCount)
	breakMinutes := s.allocator.Allocate(normalized.Meetings, budgetMinutes)

	slog.DebugContext(ctx, "break budget apportioned",
		slog.String("day", input.Day),
		slog.Int("meeting_count", meetingCount),
		slog.Int("total_meeting_minutes", normalized.TotalMeetingMinutes),
		slog.Int("break_budget_minutes", budgetMinutes),
		slog.Any("break_minutes", breakMinutes),
	)

	daySchedule, err := s.renderer.Render(normalized.Meetings, breakMinutes)
	if err != nil {
		err = fmt.Errorf("%s: %w", input.Day, err)
		tracing.RecordError(span, err)
		return nil, err
	}

	if err := outcome.Complete(budgetMinutes, breakMinutes, daySchedule); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	s.finishDay(ctx, span, outcome, start)
	return outcome, nil
}

func (s *Service) finishDay(ctx context.Context, span trace.Span, outcome *domain.DayOutcome, start time.Time) {
	breakCount := 0
	if outcome.Schedule != nil {
		breakCount = outcome.Schedule.BreakCount()
	}

	tracing.RecordDayResult(span, outcome.State.String(), outcome.TotalMeetingMinutes, outcome.BreakBudgetMinutes, breakCount, nil)

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordDayProcessed(ctx, outcome.State.String())
		s.scheduleMetrics.RecordDayDuration(ctx, outcome.State.String(), time.Since(start))
		if outcome.State.IsScheduled() {
			s.scheduleMetrics.RecordMeetingsScheduled(ctx, outcome.MeetingCount())
			s.scheduleMetrics.RecordBreakMinutes(ctx, outcome.BreakBudgetMinutes, outcome.MeetingCount())
		}
	}

	if outcome.State.IsRejected() {
		slog.InfoContext(ctx, "day unschedulable",
			slog.String("day", outcome.Day),
			slog.Int("total_meeting_minutes", outcome.TotalMeetingMinutes),
			slog.Int("max_meeting_minutes", normalize.MaxMeetingMinutesPerDay),
		)
		return
	}

	slog.DebugContext(ctx, "day scheduled",
		slog.String("day", outcome.Day),
		slog.Int("meeting_count", outcome.MeetingCount()),
		slog.Int("break_count", breakCount),
	)
}

// ScheduleWeek schedules every day concurrently and returns the outcomes in
// input order. Days share nothing, so each goroutine only writes its own
// slot. The first invalid day aborts the week.
func (s *Service) ScheduleWeek(ctx context.Context, week domain.Week) ([]*domain.DayOutcome, error) {
	start := time.Now()

	ctx, span := tracing.StartWeekSpan(ctx, len(week.Days), s.parallelism)
	defer span.End()

	outcomes := make([]*domain.DayOutcome, len(week.Days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, day := range week.Days {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := s.ScheduleDay(gctx, day)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		tracing.RecordWeekResult(span, 0, 0, err)
		slog.ErrorContext(ctx, "week scheduling failed",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	scheduled, rejected := countStates(outcomes)
	tracing.RecordWeekResult(span, scheduled, rejected, nil)

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordWeekDuration(ctx, time.Since(start))
	}

	slog.InfoContext(ctx, "week scheduled",
		slog.Int("day_count", len(outcomes)),
		slog.Int("scheduled_count", scheduled),
		slog.Int("rejected_count", rejected),
		slog.Duration("elapsed", time.Since(start)),
	)

	return outcomes, nil
}

// RecordWeek ships per-day statistics to the result recorder. Recorder
// failures are logged and never fail the run.
func (s *Service) RecordWeek(ctx context.Context, runID string, outcomes []*domain.DayOutcome) {
	if s.resultRecorder == nil || len(outcomes) == 0 {
		return
	}

	records := BuildRecords(runID, outcomes, time.Now())
	if err := s.resultRecorder.RecordDayResults(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record schedule results",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.resultRecorder.Flush(ctx); err != nil {
		slog.WarnContext(ctx, "failed to flush schedule results",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}
}

func countStates(outcomes []*domain.DayOutcome) (scheduled, rejected int) {
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		switch o.State {
		case domain.DayStateScheduled:
			scheduled++
		case domain.DayStateRejected:
			rejected++
		}
	}
	return scheduled, rejected
}
