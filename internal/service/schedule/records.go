package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

// BuildRecords flattens outcomes into recorder rows. Rejected days report an
// EndMinute of zero.
func BuildRecords(runID string, outcomes []*domain.DayOutcome, computedAt time.Time) []domain.ScheduleResultRecord {
	records := make([]domain.ScheduleResultRecord, 0, len(outcomes))
	for _, o := range outcomes {
		if o == nil {
			continue
		}

		record := domain.ScheduleResultRecord{
			RunID:               runID,
			Day:                 o.Day,
			Outcome:             o.State.String(),
			MeetingCount:        o.MeetingCount(),
			TotalMeetingMinutes: o.TotalMeetingMinutes,
			BreakBudgetMinutes:  o.BreakBudgetMinutes,
			ComputedAt:          computedAt,
		}
		if o.State.IsScheduled() && o.Schedule != nil {
			record.BreakCount = o.Schedule.BreakCount()
			record.EndMinute = o.Schedule.EndMinute()
		}
		records = append(records, record)
	}
	return records
}

// RenderWeek concatenates the printed form of each day in order.
func RenderWeek(outcomes []*domain.DayOutcome) []string {
	var lines []string
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		lines = append(lines, o.Lines()...)
	}
	return lines
}
