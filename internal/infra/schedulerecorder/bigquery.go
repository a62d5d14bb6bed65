//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability/tracing"
)

type bigQueryRecord struct {
	RecordedAt          time.Time `bigquery:"recorded_at"`
	ComputedAt          time.Time `bigquery:"computed_at"`
	RunID               string    `bigquery:"run_id"`
	Day                 string    `bigquery:"day"`
	Outcome             string    `bigquery:"outcome"`
	MeetingCount        int64     `bigquery:"meeting_count"`
	TotalMeetingMinutes int64     `bigquery:"total_meeting_minutes"`
	BreakBudgetMinutes  int64     `bigquery:"break_budget_minutes"`
	BreakCount          int64     `bigquery:"break_count"`
	EndMinute           int64     `bigquery:"end_minute"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordDayResults(ctx context.Context, records []domain.ScheduleResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, span := tracing.StartRecorderSpan(ctx, "bigquery", len(records))
	defer span.End()

	now := time.Now()
	bqRecords := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		bqRecords = append(bqRecords, &bigQueryRecord{
			RecordedAt:          now,
			ComputedAt:          record.ComputedAt,
			RunID:               record.RunID,
			Day:                 record.Day,
			Outcome:             record.Outcome,
			MeetingCount:        int64(record.MeetingCount),
			TotalMeetingMinutes: int64(record.TotalMeetingMinutes),
			BreakBudgetMinutes:  int64(record.BreakBudgetMinutes),
			BreakCount:          int64(record.BreakCount),
			EndMinute:           int64(record.EndMinute),
		})
	}

	if err := r.inserter.Put(ctx, bqRecords); err != nil {
		tracing.RecordError(span, err)
		slog.WarnContext(ctx, "failed to insert schedule results to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
