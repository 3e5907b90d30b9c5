// Package report は勤務記録の照会と期間別集計を提供する。
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/kintai/internal/hours"
	"github.com/hitoshi/kintai/internal/model"
	"github.com/hitoshi/kintai/internal/period"
	"github.com/hitoshi/kintai/internal/repository"
)

// Service はレポートのサービス層。
// 週・月の下限境界はperiodパッケージで算出し、閉じたシフトのみを集計する。
type Service struct {
	shiftRepo repository.ShiftRepository
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(shiftRepo repository.ShiftRepository) *Service {
	return &Service{
		shiftRepo: shiftRepo,
		now:       time.Now,
	}
}

// WithClock は現在時刻の取得関数を差し替えたServiceを返す。テスト用。
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ListShifts は全シフトをユーザー名付き・開始時刻降順で返す。
func (s *Service) ListShifts(ctx context.Context) ([]repository.ShiftWithName, error) {
	shifts, err := s.shiftRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("シフト一覧の取得に失敗しました: %w", err)
	}
	return shifts, nil
}

// WeeklyHours は今週（月曜0時以降）の労働時間をフォーマット済みで返す。
func (s *Service) WeeklyHours(ctx context.Context, userID string) (string, error) {
	return s.userHoursSince(ctx, userID, period.WeekStart(s.now()))
}

// MonthlyHours は今月（1日0時以降）の労働時間をフォーマット済みで返す。
func (s *Service) MonthlyHours(ctx context.Context, userID string) (string, error) {
	return s.userHoursSince(ctx, userID, period.MonthStart(s.now()))
}

// WeeklyBreakdown は今週の全ユーザーの労働時間内訳を返す。
func (s *Service) WeeklyBreakdown(ctx context.Context) ([]hours.UserHours, error) {
	return s.breakdownSince(ctx, period.WeekStart(s.now()))
}

// MonthlyBreakdown は今月の全ユーザーの労働時間内訳を返す。
func (s *Service) MonthlyBreakdown(ctx context.Context) ([]hours.UserHours, error) {
	return s.breakdownSince(ctx, period.MonthStart(s.now()))
}

// userHoursSince は1ユーザーの since 以降の閉じたシフトを集計する。
func (s *Service) userHoursSince(ctx context.Context, userID string, since time.Time) (string, error) {
	if userID == "" {
		return "", model.NewUserIDRequiredError()
	}

	shifts, err := s.shiftRepo.ListClosedSince(ctx, userID, since)
	if err != nil {
		return "", fmt.Errorf("シフトの取得に失敗しました: %w", err)
	}

	return hours.Sum(shifts), nil
}

// breakdownSince は since 以降の閉じたシフトをユーザーごとに集計する。
func (s *Service) breakdownSince(ctx context.Context, since time.Time) ([]hours.UserHours, error) {
	rows, err := s.shiftRepo.ListClosedSinceAll(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("シフトの取得に失敗しました: %w", err)
	}

	shifts := make([]*model.Shift, len(rows))
	names := make(map[string]string, len(rows))
	for i := range rows {
		shifts[i] = &rows[i].Shift
		names[rows[i].UserID] = rows[i].UserName
	}

	return hours.PerUser(shifts, names), nil
}
