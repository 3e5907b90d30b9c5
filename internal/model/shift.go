// Package model はドメインモデルを定義する。
package model

import "time"

// Shift は1回の出勤から退勤までの勤務区間を表す。
// EndedAtがnilの間は勤務中（オープンシフト）。
// 不変条件: 1ユーザーにつきオープンシフトは同時に最大1件
// （shiftsテーブルの部分ユニークインデックスで保証する）。
type Shift struct {
	ID           string
	UserID       string
	StartedAt    time.Time
	EndedAt      *time.Time
	TotalMinutes *int64 // 退勤時に確定する経過分数。勤務中はnil。
}

// IsOpen は退勤が未記録かどうかを返す。
func (s *Shift) IsOpen() bool {
	return s.EndedAt == nil
}

// Elapsed は勤務時間を返す。オープンシフトの場合は0を返す。
func (s *Shift) Elapsed() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
