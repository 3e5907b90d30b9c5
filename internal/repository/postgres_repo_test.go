package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/kintai/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresShiftRepoはShiftRepositoryインターフェースを満たすことを検証
func TestPostgresShiftRepo_ImplementsInterface(t *testing.T) {
	var _ ShiftRepository = (*PostgresShiftRepo)(nil)
}

// PostgresSummaryRepoはSummaryRepositoryインターフェースを満たすことを検証
func TestPostgresSummaryRepo_ImplementsInterface(t *testing.T) {
	var _ SummaryRepository = (*PostgresSummaryRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresShiftRepoが正しく初期化されることを検証
func TestNewPostgresShiftRepo_Initializes(t *testing.T) {
	repo := NewPostgresShiftRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresSummaryRepoが正しく初期化されることを検証
func TestNewPostgresSummaryRepo_Initializes(t *testing.T) {
	repo := NewPostgresSummaryRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// ErrShiftAlreadyOpenがerrors.Isで判定できることを検証
func TestErrShiftAlreadyOpen_Identity(t *testing.T) {
	wrapped := errors.Join(ErrShiftAlreadyOpen)
	if !errors.Is(wrapped, ErrShiftAlreadyOpen) {
		t.Error("errors.Is should match ErrShiftAlreadyOpen")
	}
}

// オープンシフトのモデル表現を検証（salida未設定はnil）
func TestShiftModel_OpenShift(t *testing.T) {
	shift := &model.Shift{
		ID:        "shift-1",
		UserID:    "user-1",
		StartedAt: time.Now(),
	}

	if !shift.IsOpen() {
		t.Error("shift without EndedAt should be open")
	}
	if shift.TotalMinutes != nil {
		t.Error("total_minutes should be nil while shift is open")
	}
}

// ShiftWithNameがシフトとユーザー名を結合することを検証
func TestShiftWithName_EmbedsShift(t *testing.T) {
	end := time.Now()
	s := ShiftWithName{
		Shift: model.Shift{
			ID:        "shift-1",
			UserID:    "user-1",
			StartedAt: end.Add(-8 * time.Hour),
			EndedAt:   &end,
		},
		UserName: "Ana",
	}

	if s.UserName != "Ana" {
		t.Errorf("UserName = %q, want %q", s.UserName, "Ana")
	}
	if s.IsOpen() {
		t.Error("closed shift should not be open")
	}
}

// 空スライスのInsertManyがDBアクセスなしで0を返すことを検証
func TestPostgresSummaryRepo_InsertMany_Empty(t *testing.T) {
	repo := NewPostgresSummaryRepo(nil)

	inserted, err := repo.InsertMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("InsertMany(nil) returned error: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
}
