package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/kintai/internal/model"
)

// PostgresSummaryRepo はPostgreSQLを使用したサマリリポジトリ。
type PostgresSummaryRepo struct {
	db *sql.DB
}

// NewPostgresSummaryRepo はPostgresSummaryRepoを生成する。
func NewPostgresSummaryRepo(db *sql.DB) *PostgresSummaryRepo {
	return &PostgresSummaryRepo{db: db}
}

// InsertMany はサマリを一括挿入する。
// (user_id, period_kind, period_start) が重複する行はON CONFLICTでスキップし、
// 実際に挿入した件数を返す。
func (r *PostgresSummaryRepo) InsertMany(ctx context.Context, summaries []*model.Summary) (int64, error) {
	if len(summaries) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var inserted int64
	for _, s := range summaries {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO summaries (id, user_id, period_kind, period_start, period_end, hours)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (user_id, period_kind, period_start) DO NOTHING`,
			s.ID, s.UserID, string(s.Kind), s.PeriodStart, s.PeriodEnd, s.Hours,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert summary: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += rowsAffected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// SnapshotAndPurgeMonth は entrada < boundary の閉じたシフトをユーザーごとに
// 月次サマリへ集約し、boundaryより前に開始した全シフト（オープン含む）を削除する。
// 両方の操作を同一トランザクションで行う。
func (r *PostgresSummaryRepo) SnapshotAndPurgeMonth(ctx context.Context, boundary, periodEnd time.Time) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	written, err := execAffected(ctx, tx,
		`INSERT INTO summaries (id, user_id, period_kind, period_start, period_end, hours)
		 SELECT gen_random_uuid()::text, user_id, 'month', $1, $2,
		        ROUND((SUM(EXTRACT(EPOCH FROM (salida - entrada))) / 3600.0)::numeric, 2)
		 FROM shifts
		 WHERE entrada < $1 AND salida IS NOT NULL
		 GROUP BY user_id
		 ON CONFLICT (user_id, period_kind, period_start) DO NOTHING`,
		boundary, periodEnd,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to snapshot monthly summaries: %w", err)
	}

	purged, err := execAffected(ctx, tx,
		`DELETE FROM shifts WHERE entrada < $1`,
		boundary,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to purge shifts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return written, purged, nil
}

// execAffected はクエリを実行して影響行数を返す。
func execAffected(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// compile-time interface check
var _ SummaryRepository = (*PostgresSummaryRepo)(nil)
