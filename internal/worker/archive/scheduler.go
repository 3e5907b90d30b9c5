package archive

import (
	"context"
	"log/slog"
	"time"
)

// Runner はアーカイブ実行のインターフェース。Jobが実装する。
type Runner interface {
	RunWeekly(ctx context.Context, now time.Time) error
	RunMonthly(ctx context.Context, now time.Time) error
}

// Scheduler は週次・月次アーカイブのティッカー駆動を行う。
// 起動直後に両方を1回実行し（コールドスタート時の追いつき）、
// 以後は設定された間隔で繰り返す。
// ジョブの失敗はログに記録するだけでプロセスは落とさない。
type Scheduler struct {
	job             Runner
	logger          *slog.Logger
	weeklyInterval  time.Duration
	monthlyInterval time.Duration
}

// NewScheduler はSchedulerの新しいインスタンスを生成する。
// 間隔が0以下の場合はデフォルト値（週次: 7日、月次: 1日）を使用する。
func NewScheduler(job Runner, logger *slog.Logger, weeklyInterval, monthlyInterval time.Duration) *Scheduler {
	if weeklyInterval <= 0 {
		weeklyInterval = 7 * 24 * time.Hour
	}
	if monthlyInterval <= 0 {
		monthlyInterval = 24 * time.Hour
	}
	return &Scheduler{
		job:             job,
		logger:          logger,
		weeklyInterval:  weeklyInterval,
		monthlyInterval: monthlyInterval,
	}
}

// Start はスケジューラを起動する。コンテキストがキャンセルされるまでブロックする。
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("アーカイブスケジューラを開始しました",
		slog.Duration("weekly_interval", s.weeklyInterval),
		slog.Duration("monthly_interval", s.monthlyInterval),
	)

	// 起動直後に1回実行
	s.runWeekly(ctx)
	s.runMonthly(ctx)

	weekly := time.NewTicker(s.weeklyInterval)
	defer weekly.Stop()
	monthly := time.NewTicker(s.monthlyInterval)
	defer monthly.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("アーカイブスケジューラを停止しました")
			return
		case <-weekly.C:
			s.runWeekly(ctx)
		case <-monthly.C:
			s.runMonthly(ctx)
		}
	}
}

// runWeekly は週次ジョブを実行し、失敗をログに記録して握りつぶす。
func (s *Scheduler) runWeekly(ctx context.Context) {
	if err := s.job.RunWeekly(ctx, time.Now()); err != nil {
		s.logger.Error("週次アーカイブに失敗しました", slog.String("error", err.Error()))
	}
}

// runMonthly は月次ジョブを実行し、失敗をログに記録して握りつぶす。
func (s *Scheduler) runMonthly(ctx context.Context) {
	if err := s.job.RunMonthly(ctx, time.Now()); err != nil {
		s.logger.Error("月次アーカイブに失敗しました", slog.String("error", err.Error()))
	}
}
