package hours

import (
	"testing"
	"time"

	"github.com/hitoshi/kintai/internal/model"
)

func closedShift(userID string, start time.Time, d time.Duration) *model.Shift {
	end := start.Add(d)
	return &model.Shift{
		ID:        "shift-" + userID,
		UserID:    userID,
		StartedAt: start,
		EndedAt:   &end,
	}
}

func openShift(userID string, start time.Time) *model.Shift {
	return &model.Shift{
		ID:        "open-" + userID,
		UserID:    userID,
		StartedAt: start,
	}
}

// 1.5時間のシフトが "1.50" にフォーマットされることを検証する。
func TestSum_SingleShift_FormatsTwoDecimals(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	// 5400000ms = 1.5h
	shifts := []*model.Shift{closedShift("u1", start, 5400000*time.Millisecond)}

	got := Sum(shifts)
	if got != "1.50" {
		t.Errorf("Sum = %q, want %q", got, "1.50")
	}
}

// 09:00〜17:30の勤務が "8.50" になることを検証する。
func TestSum_FullWorkday(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{closedShift("ana", start, 8*time.Hour+30*time.Minute)}

	got := Sum(shifts)
	if got != "8.50" {
		t.Errorf("Sum = %q, want %q", got, "8.50")
	}
}

// 空入力が "0.00" を返すことを検証する。
func TestSum_Empty_ReturnsZero(t *testing.T) {
	got := Sum(nil)
	if got != "0.00" {
		t.Errorf("Sum(nil) = %q, want %q", got, "0.00")
	}
}

// 勤務中のシフトは集計から完全に無視されることを検証する。
func TestSum_OpenShift_Ignored(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{
		closedShift("u1", start, 3*time.Hour),
		openShift("u1", start.Add(5*time.Hour)),
	}

	got := Sum(shifts)
	if got != "3.00" {
		t.Errorf("Sum = %q, want %q", got, "3.00")
	}
}

// 勤務中のシフトだけの入力も "0.00" になる（エラーにならない）ことを検証する。
func TestSum_OnlyOpenShifts_ReturnsZero(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{openShift("u1", start), openShift("u2", start)}

	got := Sum(shifts)
	if got != "0.00" {
		t.Errorf("Sum = %q, want %q", got, "0.00")
	}
}

// 複数シフトの合計が小数第2位で丸められることを検証する。
func TestSum_MultipleShifts_Accumulates(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{
		closedShift("u1", start, 3*time.Hour),
		closedShift("u1", start.Add(24*time.Hour), 5*time.Hour),
		closedShift("u1", start.Add(48*time.Hour), 20*time.Minute),
	}

	// 3 + 5 + 0.333... = 8.33
	got := Sum(shifts)
	if got != "8.33" {
		t.Errorf("Sum = %q, want %q", got, "8.33")
	}
}

// 端数のある経過時間が切り捨てられず小数として合算されることを検証する。
func TestSumHours_FractionalNotTruncated(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{closedShift("u1", start, 45*time.Minute)}

	got := SumHours(shifts)
	if got != 0.75 {
		t.Errorf("SumHours = %v, want 0.75", got)
	}
}

// ユーザーごとのグループ集計が表示名をキーに正しく算出されることを検証する。
func TestPerUser_GroupsByOwner(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{
		closedShift("u1", start, 3*time.Hour),
		closedShift("u2", start, 8*time.Hour+30*time.Minute),
		closedShift("u1", start.Add(24*time.Hour), 5*time.Hour),
		openShift("u2", start.Add(24*time.Hour)),
	}
	names := map[string]string{"u1": "Ana", "u2": "Luis"}

	got := PerUser(shifts, names)
	if len(got) != 2 {
		t.Fatalf("PerUser returned %d entries, want 2", len(got))
	}

	// 表示名昇順
	if got[0].Name != "Ana" || got[0].Hours != "8.00" {
		t.Errorf("got[0] = %+v, want {Ana 8.00}", got[0])
	}
	if got[1].Name != "Luis" || got[1].Hours != "8.50" {
		t.Errorf("got[1] = %+v, want {Luis 8.50}", got[1])
	}
}

// 表示名が未解決のユーザーはIDをそのまま表示名として使うことを検証する。
func TestPerUser_UnknownUser_FallsBackToID(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	shifts := []*model.Shift{closedShift("u9", start, time.Hour)}

	got := PerUser(shifts, map[string]string{})
	if len(got) != 1 {
		t.Fatalf("PerUser returned %d entries, want 1", len(got))
	}
	if got[0].Name != "u9" {
		t.Errorf("Name = %q, want %q", got[0].Name, "u9")
	}
}

// 空入力のPerUserが空スライスを返すことを検証する。
func TestPerUser_Empty(t *testing.T) {
	got := PerUser(nil, nil)
	if len(got) != 0 {
		t.Errorf("PerUser(nil) returned %d entries, want 0", len(got))
	}
}
