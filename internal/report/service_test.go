package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/kintai/internal/model"
	"github.com/hitoshi/kintai/internal/repository"
)

// --- モック ---

type mockShiftRepo struct {
	listAllFn            func(ctx context.Context) ([]repository.ShiftWithName, error)
	listClosedSinceFn    func(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error)
	listClosedSinceAllFn func(ctx context.Context, since time.Time) ([]repository.ShiftWithName, error)
}

func (m *mockShiftRepo) Open(ctx context.Context, shift *model.Shift) error { return nil }

func (m *mockShiftRepo) CloseLatest(ctx context.Context, userID string, endedAt time.Time) (*model.Shift, error) {
	return nil, nil
}

func (m *mockShiftRepo) ListAll(ctx context.Context) ([]repository.ShiftWithName, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockShiftRepo) ListClosedSince(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error) {
	if m.listClosedSinceFn != nil {
		return m.listClosedSinceFn(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockShiftRepo) ListClosedSinceAll(ctx context.Context, since time.Time) ([]repository.ShiftWithName, error) {
	if m.listClosedSinceAllFn != nil {
		return m.listClosedSinceAllFn(ctx, since)
	}
	return nil, nil
}

func (m *mockShiftRepo) ListClosedBefore(ctx context.Context, boundary time.Time) ([]repository.ShiftWithName, error) {
	return nil, nil
}

func closedShift(userID string, start time.Time, d time.Duration) *model.Shift {
	end := start.Add(d)
	return &model.Shift{ID: "s-" + userID, UserID: userID, StartedAt: start, EndedAt: &end}
}

// --- テスト ---

// 週次カウンタが月曜0時を下限境界としてリポジトリに渡すことを検証する。
func TestService_WeeklyHours_UsesWeekStartBoundary(t *testing.T) {
	// 2025-06-18 は水曜日。週の月曜は 2025-06-16。
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	wantSince := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	var gotSince time.Time
	repo := &mockShiftRepo{
		listClosedSinceFn: func(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error) {
			gotSince = since
			return []*model.Shift{
				closedShift(userID, since.Add(9*time.Hour), 8*time.Hour+30*time.Minute),
			}, nil
		},
	}
	svc := NewService(repo).WithClock(func() time.Time { return now })

	horas, err := svc.WeeklyHours(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WeeklyHours returned error: %v", err)
	}

	if !gotSince.Equal(wantSince) {
		t.Errorf("since = %v, want %v", gotSince, wantSince)
	}
	if horas != "8.50" {
		t.Errorf("horas = %q, want %q", horas, "8.50")
	}
}

// 月次カウンタが1日0時を下限境界として使うことを検証する。
func TestService_MonthlyHours_UsesMonthStartBoundary(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	wantSince := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var gotSince time.Time
	repo := &mockShiftRepo{
		listClosedSinceFn: func(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error) {
			gotSince = since
			return nil, nil
		},
	}
	svc := NewService(repo).WithClock(func() time.Time { return now })

	horas, err := svc.MonthlyHours(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("MonthlyHours returned error: %v", err)
	}

	if !gotSince.Equal(wantSince) {
		t.Errorf("since = %v, want %v", gotSince, wantSince)
	}
	if horas != "0.00" {
		t.Errorf("horas = %q, want %q", horas, "0.00")
	}
}

// 今週3時間・先週5時間のシフトで、週次が3.00、月次が8.00になることを検証する。
// リポジトリモックは渡された境界でのフィルタを模倣する。
func TestService_WeeklyAndMonthly_WindowSelection(t *testing.T) {
	// 2025-06-18 は水曜日。週の月曜は 06-16、月初は 06-01。
	now := time.Date(2025, 6, 18, 18, 0, 0, 0, time.UTC)
	thisWeek := closedShift("ana", time.Date(2025, 6, 17, 9, 0, 0, 0, time.UTC), 3*time.Hour)
	lastWeek := closedShift("ana", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 5*time.Hour)
	all := []*model.Shift{thisWeek, lastWeek}

	repo := &mockShiftRepo{
		listClosedSinceFn: func(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error) {
			var result []*model.Shift
			for _, s := range all {
				if !s.StartedAt.Before(since) {
					result = append(result, s)
				}
			}
			return result, nil
		},
	}
	svc := NewService(repo).WithClock(func() time.Time { return now })

	weekly, err := svc.WeeklyHours(context.Background(), "ana")
	if err != nil {
		t.Fatalf("WeeklyHours returned error: %v", err)
	}
	monthly, err := svc.MonthlyHours(context.Background(), "ana")
	if err != nil {
		t.Fatalf("MonthlyHours returned error: %v", err)
	}

	if weekly != "3.00" {
		t.Errorf("weekly = %q, want %q", weekly, "3.00")
	}
	if monthly != "8.00" {
		t.Errorf("monthly = %q, want %q", monthly, "8.00")
	}
}

// 空のuserIDがValidationErrorになることを検証する。
func TestService_WeeklyHours_EmptyUserID_ReturnsValidationError(t *testing.T) {
	svc := NewService(&mockShiftRepo{})

	_, err := svc.WeeklyHours(context.Background(), "")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeUserIDRequired {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeUserIDRequired)
	}
}

// 全ユーザー内訳が表示名ごとに集計されることを検証する。
func TestService_WeeklyBreakdown_GroupsByName(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 17, 9, 0, 0, 0, time.UTC)

	repo := &mockShiftRepo{
		listClosedSinceAllFn: func(ctx context.Context, since time.Time) ([]repository.ShiftWithName, error) {
			return []repository.ShiftWithName{
				{Shift: *closedShift("u1", start, 3*time.Hour), UserName: "Ana"},
				{Shift: *closedShift("u2", start, 8*time.Hour), UserName: "Luis"},
				{Shift: *closedShift("u1", start.Add(5*time.Hour), 2*time.Hour), UserName: "Ana"},
			}, nil
		},
	}
	svc := NewService(repo).WithClock(func() time.Time { return now })

	got, err := svc.WeeklyBreakdown(context.Background())
	if err != nil {
		t.Fatalf("WeeklyBreakdown returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("breakdown length = %d, want 2", len(got))
	}
	if got[0].Name != "Ana" || got[0].Hours != "5.00" {
		t.Errorf("got[0] = %+v, want {Ana 5.00}", got[0])
	}
	if got[1].Name != "Luis" || got[1].Hours != "8.00" {
		t.Errorf("got[1] = %+v, want {Luis 8.00}", got[1])
	}
}

// リポジトリエラーがラップされて返ることを検証する。
func TestService_ListShifts_RepoError_Wrapped(t *testing.T) {
	repo := &mockShiftRepo{
		listAllFn: func(ctx context.Context) ([]repository.ShiftWithName, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo)

	_, err := svc.ListShifts(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
