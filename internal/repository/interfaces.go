// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hitoshi/kintai/internal/model"
)

// ErrShiftAlreadyOpen はオープンシフトが既に存在するユーザーへの
// 出勤登録が拒否されたことを示す。
var ErrShiftAlreadyOpen = errors.New("an open shift already exists for this user")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// UpsertByName は表示名でユーザーを作成または取得する。
	// 同名ユーザーが既に存在する場合は既存レコードを返す（重複は作らない）。
	UpsertByName(ctx context.Context, user *model.User) (*model.User, error)
}

// ShiftRepository はシフトデータの永続化インターフェース。
type ShiftRepository interface {
	// Open は新しいオープンシフトを作成する。
	// 同一ユーザーのオープンシフトが既に存在する場合はErrShiftAlreadyOpenを返す。
	// 判定と挿入は単一の条件付きINSERTで行い、競合は部分ユニークインデックスが防ぐ。
	Open(ctx context.Context, shift *model.Shift) error

	// CloseLatest はユーザーの最新のオープンシフト（entrada降順で1件）を閉じる。
	// salidaとtotal_minutesの確定は単一のUPDATE文で行う。
	// オープンシフトが存在しない場合はnilを返す。
	CloseLatest(ctx context.Context, userID string, endedAt time.Time) (*model.Shift, error)

	// ListAll は全シフトをユーザー名付き・entrada降順で返す。
	ListAll(ctx context.Context) ([]ShiftWithName, error)

	// ListClosedSince は指定ユーザーの entrada >= since かつ閉じたシフトを返す。
	ListClosedSince(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error)

	// ListClosedSinceAll は全ユーザーの entrada >= since かつ閉じたシフトを
	// ユーザー名付きで返す。
	ListClosedSinceAll(ctx context.Context, since time.Time) ([]ShiftWithName, error)

	// ListClosedBefore は全ユーザーの entrada < boundary かつ閉じたシフトを
	// ユーザー名付きで返す。週次アーカイブの集計対象の取得に使用する。
	ListClosedBefore(ctx context.Context, boundary time.Time) ([]ShiftWithName, error)
}

// SummaryRepository は期間集計スナップショットの永続化インターフェース。
type SummaryRepository interface {
	// InsertMany はサマリを一括挿入する。
	// (user_id, period_kind, period_start) が重複する行はスキップし、
	// 実際に挿入した件数を返す（ジョブ再実行の冪等性）。
	InsertMany(ctx context.Context, summaries []*model.Summary) (int64, error)

	// SnapshotAndPurgeMonth は entrada < boundary の閉じたシフトをユーザーごとに
	// 月次サマリへ集約し、boundaryより前に開始した全シフトを削除する。
	// スナップショットと削除は同一トランザクションで行い、
	// 集計と削除の間にシフトが取りこぼされる余地を残さない。
	// 書き込んだサマリ件数と削除したシフト件数を返す。
	SnapshotAndPurgeMonth(ctx context.Context, boundary, periodEnd time.Time) (written int64, purged int64, err error)
}

// ShiftWithName はシフトと所有ユーザーの表示名を結合した構造体。
type ShiftWithName struct {
	model.Shift
	UserName string
}
