package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/apportion"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/budget"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/normalize"
	"github.com/KasumiMercury/primind-break-scheduler/internal/service/render"
)

func createTestService(recorder domain.ScheduleResultRecorder, quantumMinutes int) *Service {
	return NewService(
		normalize.NewNormalizer(),
		budget.NewCalculator(quantumMinutes),
		apportion.NewAllocator(quantumMinutes),
		render.NewRenderer(),
		recorder,
		nil,
		2,
	)
}

func TestScheduleDay(t *testing.T) {
	tests := []struct {
		name       string
		input      domain.DayInput
		wantState  domain.DayState
		wantBreaks []int
		wantLines  []string
	}{
		{
			name:       "three meetings with equal long breaks",
			input:      domain.NewDayInput("Mon", 1, 3, 3),
			wantState:  domain.DayStateScheduled,
			wantBreaks: []int{60, 60},
			wantLines: []string{
				"Mon:",
				"  09:00 - 12:00  Meeting (3h)",
				"  12:00 - 13:00  Break (60m)",
				"  13:00 - 16:00  Meeting (3h)",
				"  16:00 - 17:00  Break (60m)",
				"  17:00 - 18:00  Meeting (1h)",
			},
		},
		{
			name:       "two meetings take the whole slack",
			input:      domain.NewDayInput("Tue", 2, 3),
			wantState:  domain.DayStateScheduled,
			wantBreaks: []int{240},
			wantLines: []string{
				"Tue:",
				"  09:00 - 12:00  Meeting (3h)",
				"  12:00 - 16:00  Break (240m)",
				"  16:00 - 18:00  Meeting (2h)",
			},
		},
		{
			name:       "full day has no breaks",
			input:      domain.NewDayInput("Wed", 3, 3, 2, 1),
			wantState:  domain.DayStateScheduled,
			wantBreaks: []int{0, 0, 0},
			wantLines: []string{
				"Wed:",
				"  09:00 - 12:00  Meeting (3h)",
				"  12:00 - 15:00  Meeting (3h)",
				"  15:00 - 17:00  Meeting (2h)",
				"  17:00 - 18:00  Meeting (1h)",
			},
		},
		{
			name:       "leftover unit goes to the largest remainder",
			input:      domain.NewDayInput("Thu", 4, 2, 1, 1),
			wantState:  domain.DayStateScheduled,
			wantBreaks: []int{30, 30, 0},
			wantLines: []string{
				"Thu:",
				"  09:00 - 13:00  Meeting (4h)",
				"  13:00 - 13:30  Break (30m)",
				"  13:30 - 15:30  Meeting (2h)",
				"  15:30 - 16:00  Break (30m)",
				"  16:00 - 17:00  Meeting (1h)",
				"  17:00 - 18:00  Meeting (1h)",
			},
		},
		{
			name:      "overbooked day is unschedulable",
			input:     domain.NewDayInput("Fri", 4, 3, 1, 1, 1),
			wantState: domain.DayStateRejected,
			wantLines: []string{"Fri: Unschedulable"},
		},
		{
			name:       "single meeting fills the window",
			input:      domain.NewDayInput("Sat", 9),
			wantState:  domain.DayStateScheduled,
			wantBreaks: []int{},
			wantLines: []string{
				"Sat:",
				"  09:00 - 18:00  Meeting (9h)",
			},
		},
		{
			name:      "two five hour meetings overflow",
			input:     domain.NewDayInput("Sun", 5, 5),
			wantState: domain.DayStateRejected,
			wantLines: []string{"Sun: Unschedulable"},
		},
		{
			name:      "oversized meeting does not wrap into a feasible day",
			input:     domain.NewDayInput("Mon", 1<<58, 1),
			wantState: domain.DayStateRejected,
			wantLines: []string{"Mon: Unschedulable"},
		},
		{
			name:      "hour count whose minutes wrap to a small total",
			input:     domain.NewDayInput("Tue", 307445734561825861, 1),
			wantState: domain.DayStateRejected,
			wantLines: []string{"Tue: Unschedulable"},
		},
		{
			name:       "empty day is an empty schedule",
			input:      domain.NewDayInput("Hol"),
			wantState:  domain.DayStateScheduled,
			wantBreaks: []int{},
			wantLines:  []string{"Hol:"},
		},
	}

	svc := createTestService(nil, domain.DefaultQuantumMinutes)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := svc.ScheduleDay(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if outcome.State != tt.wantState {
				t.Errorf("state: got %s, want %s", outcome.State, tt.wantState)
			}

			if tt.wantState == domain.DayStateScheduled {
				if len(outcome.BreakMinutes) != len(tt.wantBreaks) {
					t.Fatalf("breaks: got %v, want %v", outcome.BreakMinutes, tt.wantBreaks)
				}
				for i := range tt.wantBreaks {
					if outcome.BreakMinutes[i] != tt.wantBreaks[i] {
						t.Errorf("breaks: got %v, want %v", outcome.BreakMinutes, tt.wantBreaks)
						break
					}
				}
			}

			lines := outcome.Lines()
			if len(lines) != len(tt.wantLines) {
				t.Fatalf("lines: got %q, want %q", lines, tt.wantLines)
			}
			for i := range lines {
				if lines[i] != tt.wantLines[i] {
					t.Errorf("line %d: got %q, want %q", i, lines[i], tt.wantLines[i])
				}
			}
		})
	}
}

func TestScheduleDay_InvalidDuration(t *testing.T) {
	svc := createTestService(nil, domain.DefaultQuantumMinutes)

	for _, hours := range [][]int{{0}, {3, -1}, {2, 0, 4}} {
		_, err := svc.ScheduleDay(context.Background(), domain.NewDayInput("Bad", hours...))
		if !errors.Is(err, domain.ErrInvalidDuration) {
			t.Errorf("%v: expected ErrInvalidDuration, got %v", hours, err)
		}
	}
}

// Every feasible day with up to five meetings must tile 09:00-18:00 when it
// has more than one meeting, with quantum-aligned breaks that never grow as
// the preceding meeting shrinks.
func TestScheduleDay_TimelineInvariants(t *testing.T) {
	svc := createTestService(nil, domain.DefaultQuantumMinutes)
	ctx := context.Background()

	var walk func(prefix []int, remaining int)
	checked := 0
	walk = func(prefix []int, remaining int) {
		if len(prefix) > 0 {
			checkTimeline(t, svc, ctx, prefix)
			checked++
		}
		if len(prefix) == 5 {
			return
		}
		for h := 1; h <= remaining; h++ {
			walk(append(append([]int{}, prefix...), h), remaining-h)
		}
	}
	walk(nil, 9)

	if checked == 0 {
		t.Fatal("no days checked")
	}
}

func checkTimeline(t *testing.T, svc *Service, ctx context.Context, hours []int) {
	t.Helper()

	outcome, err := svc.ScheduleDay(ctx, domain.NewDayInput("Day", hours...))
	if err != nil {
		t.Fatalf("%v: unexpected error: %v", hours, err)
	}
	if !outcome.State.IsScheduled() {
		t.Fatalf("%v: expected scheduled, got %s", hours, outcome.State)
	}

	s := outcome.Schedule
	if s.StartMinute() != domain.DayStartMinute {
		t.Errorf("%v: starts at %s", hours, domain.FormatClock(s.StartMinute()))
	}
	if len(hours) > 1 && s.EndMinute() != domain.DayEndMinute {
		t.Errorf("%v: ends at %s", hours, domain.FormatClock(s.EndMinute()))
	}

	prevEnd := domain.DayStartMinute
	for _, b := range s.Blocks {
		if b.Start != prevEnd {
			t.Errorf("%v: gap or overlap at %s", hours, domain.FormatClock(b.Start))
		}
		if b.IsBreak() && b.Minutes()%domain.DefaultQuantumMinutes != 0 {
			t.Errorf("%v: break of %d minutes is not aligned", hours, b.Minutes())
		}
		if b.Start%domain.DefaultQuantumMinutes != 0 {
			t.Errorf("%v: block starts off the half hour at %s", hours, domain.FormatClock(b.Start))
		}
		prevEnd = b.End
	}

	if s.BreakMinutes() != outcome.BreakBudgetMinutes {
		t.Errorf("%v: break minutes %d, budget %d", hours, s.BreakMinutes(), outcome.BreakBudgetMinutes)
	}

	for i := 1; i < len(outcome.BreakMinutes); i++ {
		if outcome.Meetings[i].Hours < outcome.Meetings[i-1].Hours &&
			outcome.BreakMinutes[i] > outcome.BreakMinutes[i-1] {
			t.Errorf("%v: break after shorter meeting is longer: %v", hours, outcome.BreakMinutes)
		}
	}
}

func TestScheduleWeek(t *testing.T) {
	svc := createTestService(nil, domain.DefaultQuantumMinutes)

	week := domain.Week{Days: []domain.DayInput{
		domain.NewDayInput("Mon", 1, 3, 3),
		domain.NewDayInput("Tue", 2, 3),
		domain.NewDayInput("Wed", 3, 3, 2, 1),
		domain.NewDayInput("Thu", 4, 2, 1, 1),
		domain.NewDayInput("Fri", 4, 3, 1, 1, 1),
	}}

	outcomes, err := svc.ScheduleWeek(context.Background(), week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != len(week.Days) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(week.Days))
	}

	for i, o := range outcomes {
		if o.Day != week.Days[i].Day {
			t.Errorf("outcome %d: got day %q, want %q", i, o.Day, week.Days[i].Day)
		}
	}

	wantStates := []domain.DayState{
		domain.DayStateScheduled,
		domain.DayStateScheduled,
		domain.DayStateScheduled,
		domain.DayStateScheduled,
		domain.DayStateRejected,
	}
	for i, want := range wantStates {
		if outcomes[i].State != want {
			t.Errorf("%s: got %s, want %s", outcomes[i].Day, outcomes[i].State, want)
		}
	}

	lines := RenderWeek(outcomes)
	if lines[0] != "Mon:" {
		t.Errorf("first line: got %q", lines[0])
	}
	if last := lines[len(lines)-1]; last != "Fri: Unschedulable" {
		t.Errorf("last line: got %q", last)
	}
}

func TestScheduleWeek_InvalidDayAbortsWeek(t *testing.T) {
	svc := createTestService(nil, domain.DefaultQuantumMinutes)

	week := domain.Week{Days: []domain.DayInput{
		domain.NewDayInput("Mon", 1, 3, 3),
		domain.NewDayInput("Tue", 2, 0),
	}}

	outcomes, err := svc.ScheduleWeek(context.Background(), week)
	if !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if outcomes != nil {
		t.Errorf("expected nil outcomes, got %d", len(outcomes))
	}
}

func TestScheduleWeek_CoarseQuantum(t *testing.T) {
	svc := createTestService(nil, 60)

	outcomes, err := svc.ScheduleWeek(context.Background(), domain.Week{Days: []domain.DayInput{
		domain.NewDayInput("Thu", 4, 2, 1, 1),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := outcomes[0].BreakMinutes
	want := []int{60, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("breaks: got %v, want %v", got, want)
		}
	}
}

func TestBuildRecords(t *testing.T) {
	svc := createTestService(nil, domain.DefaultQuantumMinutes)
	ctx := context.Background()

	scheduled, err := svc.ScheduleDay(ctx, domain.NewDayInput("Mon", 1, 3, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rejected, err := svc.ScheduleDay(ctx, domain.NewDayInput("Fri", 5, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	computedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	records := BuildRecords("run-1", []*domain.DayOutcome{scheduled, rejected}, computedAt)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	mon := records[0]
	if mon.RunID != "run-1" || mon.Day != "Mon" || mon.Outcome != "scheduled" {
		t.Errorf("unexpected record: %+v", mon)
	}
	if mon.MeetingCount != 3 || mon.TotalMeetingMinutes != 420 || mon.BreakBudgetMinutes != 120 {
		t.Errorf("unexpected totals: %+v", mon)
	}
	if mon.BreakCount != 2 || mon.EndMinute != domain.DayEndMinute {
		t.Errorf("unexpected shape: %+v", mon)
	}
	if !mon.ComputedAt.Equal(computedAt) {
		t.Errorf("ComputedAt: got %v", mon.ComputedAt)
	}

	fri := records[1]
	if fri.Outcome != "rejected" || fri.BreakCount != 0 || fri.EndMinute != 0 {
		t.Errorf("unexpected rejected record: %+v", fri)
	}
}

func TestRecordWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := domain.NewMockScheduleResultRecorder(ctrl)
	svc := createTestService(recorder, domain.DefaultQuantumMinutes)
	ctx := context.Background()

	outcomes, err := svc.ScheduleWeek(ctx, domain.Week{Days: []domain.DayInput{
		domain.NewDayInput("Mon", 1, 3, 3),
		domain.NewDayInput("Fri", 4, 3, 1, 1, 1),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gomock.InOrder(
		recorder.EXPECT().
			RecordDayResults(gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, records []domain.ScheduleResultRecord) error {
				for _, r := range records {
					if r.RunID != "run-42" {
						t.Errorf("RunID: got %q", r.RunID)
					}
				}
				return nil
			}),
		recorder.EXPECT().Flush(gomock.Any()).Return(nil),
	)

	svc.RecordWeek(ctx, "run-42", outcomes)
}

func TestRecordWeek_RecorderErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := domain.NewMockScheduleResultRecorder(ctrl)
	svc := createTestService(recorder, domain.DefaultQuantumMinutes)
	ctx := context.Background()

	outcome, err := svc.ScheduleDay(ctx, domain.NewDayInput("Mon", 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorder.EXPECT().
		RecordDayResults(gomock.Any(), gomock.Any()).
		Return(errors.New("influx unavailable"))
	recorder.EXPECT().Flush(gomock.Any()).Times(0)

	svc.RecordWeek(ctx, "run-1", []*domain.DayOutcome{outcome})
}
