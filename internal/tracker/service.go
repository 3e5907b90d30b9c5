// Package tracker は出勤・退勤のドメインロジックを提供する。
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/kintai/internal/model"
	"github.com/hitoshi/kintai/internal/repository"
)

// Service は出勤・退勤のサービス層。
// 名前によるログインとシフトの開閉を提供する。
type Service struct {
	userRepo  repository.UserRepository
	shiftRepo repository.ShiftRepository
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, shiftRepo repository.ShiftRepository) *Service {
	return &Service{
		userRepo:  userRepo,
		shiftRepo: shiftRepo,
		now:       time.Now,
	}
}

// WithClock は現在時刻の取得関数を差し替えたServiceを返す。テスト用。
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Login は表示名でユーザーを作成または取得する。
// 同じ名前で何度呼んでも同一のユーザーを返す（重複は作らない）。
// 名前が空の場合はValidationErrorを返す。
func (s *Service) Login(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewNameRequiredError()
	}

	user, err := s.userRepo.UpsertByName(ctx, &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("ユーザーの作成または取得に失敗しました: %w", err)
	}

	return user, nil
}

// ClockIn はユーザーの新しいオープンシフトを作成する。
// オープンシフトが既に存在する場合は2件目を作らずStateErrorを返す。
func (s *Service) ClockIn(ctx context.Context, userID string) (*model.Shift, error) {
	if userID == "" {
		return nil, model.NewUserIDRequiredError()
	}

	shift := &model.Shift{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartedAt: s.now(),
	}

	if err := s.shiftRepo.Open(ctx, shift); err != nil {
		if errors.Is(err, repository.ErrShiftAlreadyOpen) {
			return nil, model.NewShiftAlreadyOpenError()
		}
		return nil, fmt.Errorf("シフトの作成に失敗しました: %w", err)
	}

	slog.Info("出勤を記録しました",
		slog.String("user_id", userID),
		slog.String("shift_id", shift.ID),
	)

	return shift, nil
}

// ClockOut はユーザーの最新のオープンシフトを閉じて返す。
// 経過分数は閉じたシフトのTotalMinutesに確定する。
// オープンシフトが存在しない場合はStateErrorを返す。
func (s *Service) ClockOut(ctx context.Context, userID string) (*model.Shift, error) {
	if userID == "" {
		return nil, model.NewUserIDRequiredError()
	}

	shift, err := s.shiftRepo.CloseLatest(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("シフトのクローズに失敗しました: %w", err)
	}
	if shift == nil {
		return nil, model.NewNoActiveShiftError()
	}

	var minutes int64
	if shift.TotalMinutes != nil {
		minutes = *shift.TotalMinutes
	}
	slog.Info("退勤を記録しました",
		slog.String("user_id", userID),
		slog.String("shift_id", shift.ID),
		slog.Int64("total_minutes", minutes),
	)

	return shift, nil
}
