// Package archive は勤務記録の定期アーカイブジョブを提供する。
// 週次リセットは先週までの閉じたシフトをユーザーごとにサマリへ snapshot し、
// 月次リセットは当月より前のシフトを月次サマリへ snapshot したうえで削除する。
// 各エントリポイントはスケジューラに依存しない素のメソッドで、
// タイマー・cron・手動のいずれからでも呼び出せる。
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/kintai/internal/hours"
	"github.com/hitoshi/kintai/internal/model"
	"github.com/hitoshi/kintai/internal/period"
	"github.com/hitoshi/kintai/internal/repository"
)

// MetricsRecorder はアーカイブジョブのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordArchiveRun(kind string)
	RecordSummariesWritten(count int64)
	RecordShiftsPurged(count int64)
}

// Job は週次・月次アーカイブの実行本体。
// (user_id, period_kind, period_start) のユニーク制約により、
// 同じ期間への再実行は重複サマリを作らない。
type Job struct {
	shiftRepo   repository.ShiftRepository
	summaryRepo repository.SummaryRepository
	logger      *slog.Logger
	metrics     MetricsRecorder
}

// NewJob は新しいJobを生成する。metricsはnil可。
func NewJob(
	shiftRepo repository.ShiftRepository,
	summaryRepo repository.SummaryRepository,
	logger *slog.Logger,
	metrics MetricsRecorder,
) *Job {
	return &Job{
		shiftRepo:   shiftRepo,
		summaryRepo: summaryRepo,
		logger:      logger,
		metrics:     metrics,
	}
}

// RunWeekly は今週の月曜0時より前に開始した閉じたシフトをユーザーごとに集計し、
// 週次サマリとして書き込む。シフトレコードは削除しない（削除は月次リセットの責務）。
func (j *Job) RunWeekly(ctx context.Context, now time.Time) error {
	start := time.Now()
	boundary := period.WeekStart(now)

	rows, err := j.shiftRepo.ListClosedBefore(ctx, boundary)
	if err != nil {
		return fmt.Errorf("週次アーカイブ対象の取得に失敗: %w", err)
	}

	shifts := make([]*model.Shift, len(rows))
	for i := range rows {
		shifts[i] = &rows[i].Shift
	}

	totals := hours.TotalsByUser(shifts)
	summaries := make([]*model.Summary, 0, len(totals))
	for userID, total := range totals {
		summaries = append(summaries, &model.Summary{
			ID:          uuid.NewString(),
			UserID:      userID,
			Kind:        model.PeriodWeek,
			PeriodStart: boundary,
			PeriodEnd:   now,
			Hours:       math.Round(total*100) / 100,
		})
	}

	written, err := j.summaryRepo.InsertMany(ctx, summaries)
	if err != nil {
		return fmt.Errorf("週次サマリの書き込みに失敗: %w", err)
	}

	if j.metrics != nil {
		j.metrics.RecordArchiveRun(string(model.PeriodWeek))
		j.metrics.RecordSummariesWritten(written)
	}

	j.logger.Info("週次アーカイブが完了しました",
		slog.Time("boundary", boundary),
		slog.Int("users", len(summaries)),
		slog.Int64("written", written),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return nil
}

// RunMonthly は当月1日0時より前に開始したシフトを月次サマリへ集約したうえで削除する。
// スナップショットと削除は単一トランザクションで行われるため、
// 集計されないままレコードが消えることはない。当月のシフトには触れない。
func (j *Job) RunMonthly(ctx context.Context, now time.Time) error {
	start := time.Now()
	boundary := period.MonthStart(now)

	written, purged, err := j.summaryRepo.SnapshotAndPurgeMonth(ctx, boundary, now)
	if err != nil {
		return fmt.Errorf("月次アーカイブの実行に失敗: %w", err)
	}

	if j.metrics != nil {
		j.metrics.RecordArchiveRun(string(model.PeriodMonth))
		j.metrics.RecordSummariesWritten(written)
		j.metrics.RecordShiftsPurged(purged)
	}

	j.logger.Info("月次アーカイブが完了しました",
		slog.Time("boundary", boundary),
		slog.Int64("written", written),
		slog.Int64("purged", purged),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return nil
}
