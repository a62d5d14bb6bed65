package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=schedule_result_recorder.go -destination=schedule_result_recorder_mock.go -package=domain

type ScheduleResultRecord struct {
	RunID               string
	Day                 string
	Outcome             string
	MeetingCount        int
	TotalMeetingMinutes int
	BreakBudgetMinutes  int
	BreakCount          int
	EndMinute           int
	ComputedAt          time.Time
}

type ScheduleResultRecorder interface {
	RecordDayResults(ctx context.Context, records []ScheduleResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
