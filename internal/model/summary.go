// Package model はドメインモデルを定義する。
package model

import "time"

// PeriodKind は集計期間の種別を表す。
type PeriodKind string

const (
	// PeriodWeek は週次集計（月曜始まり）を示す。
	PeriodWeek PeriodKind = "week"
	// PeriodMonth は月次集計（1日始まり）を示す。
	PeriodMonth PeriodKind = "month"
)

// Summary は1ユーザー・1期間の労働時間スナップショットを表す。
// アーカイブジョブのみが作成する追記専用レコードで、作成後は変更しない。
// (UserID, Kind, PeriodStart) はユニークで、ジョブの再実行で重複しない。
type Summary struct {
	ID          string
	UserID      string
	Kind        PeriodKind
	PeriodStart time.Time
	PeriodEnd   time.Time
	Hours       float64
	CreatedAt   time.Time
}
