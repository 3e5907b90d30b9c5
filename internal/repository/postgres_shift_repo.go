package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/kintai/internal/model"
)

// PostgresShiftRepo はPostgreSQLを使用したシフトリポジトリ。
type PostgresShiftRepo struct {
	db *sql.DB
}

// NewPostgresShiftRepo はPostgresShiftRepoを生成する。
func NewPostgresShiftRepo(db *sql.DB) *PostgresShiftRepo {
	return &PostgresShiftRepo{db: db}
}

// Open は新しいオープンシフトを作成する。
// 同一ユーザーのオープンシフトが既に存在する場合はErrShiftAlreadyOpenを返す。
// WHERE NOT EXISTSの判定と同時リクエストの競合は
// shifts_one_open_per_user部分ユニークインデックスが防ぐ。
func (r *PostgresShiftRepo) Open(ctx context.Context, shift *model.Shift) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO shifts (id, user_id, entrada)
		 SELECT $1, $2, $3
		 WHERE NOT EXISTS (
		 	SELECT 1 FROM shifts WHERE user_id = $2 AND salida IS NULL
		 )`,
		shift.ID, shift.UserID, shift.StartedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrShiftAlreadyOpen
		}
		return fmt.Errorf("failed to insert shift: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrShiftAlreadyOpen
	}

	return nil
}

// CloseLatest はユーザーの最新のオープンシフトを閉じて返す。
// 対象の選択・salidaの設定・経過分数の確定を単一のUPDATE文で行うため、
// 同時退勤リクエストでも二重クローズは起きない。
// オープンシフトが存在しない場合はnilを返す。
func (r *PostgresShiftRepo) CloseLatest(ctx context.Context, userID string, endedAt time.Time) (*model.Shift, error) {
	shift := &model.Shift{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE shifts
		 SET salida = $2,
		     total_minutes = ROUND(EXTRACT(EPOCH FROM ($2::timestamptz - entrada)) / 60.0)
		 WHERE id = (
		 	SELECT id FROM shifts
		 	WHERE user_id = $1 AND salida IS NULL
		 	ORDER BY entrada DESC
		 	LIMIT 1
		 )
		 RETURNING id, user_id, entrada, salida, total_minutes`,
		userID, endedAt,
	).Scan(&shift.ID, &shift.UserID, &shift.StartedAt, &shift.EndedAt, &shift.TotalMinutes)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close shift: %w", err)
	}

	return shift, nil
}

// ListAll は全シフトをユーザー名付き・entrada降順で返す。
func (r *PostgresShiftRepo) ListAll(ctx context.Context) ([]ShiftWithName, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.entrada, s.salida, s.total_minutes, u.nombre
		 FROM shifts s
		 JOIN users u ON u.id = s.user_id
		 ORDER BY s.entrada DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	return scanShiftsWithName(rows)
}

// ListClosedSince は指定ユーザーの entrada >= since かつ閉じたシフトを返す。
func (r *PostgresShiftRepo) ListClosedSince(ctx context.Context, userID string, since time.Time) ([]*model.Shift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, entrada, salida, total_minutes
		 FROM shifts
		 WHERE user_id = $1 AND entrada >= $2 AND salida IS NOT NULL
		 ORDER BY entrada`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*model.Shift
	for rows.Next() {
		shift := &model.Shift{}
		if err := rows.Scan(&shift.ID, &shift.UserID, &shift.StartedAt, &shift.EndedAt, &shift.TotalMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// ListClosedSinceAll は全ユーザーの entrada >= since かつ閉じたシフトを
// ユーザー名付きで返す。
func (r *PostgresShiftRepo) ListClosedSinceAll(ctx context.Context, since time.Time) ([]ShiftWithName, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.entrada, s.salida, s.total_minutes, u.nombre
		 FROM shifts s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.entrada >= $1 AND s.salida IS NOT NULL
		 ORDER BY s.entrada`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed shifts: %w", err)
	}
	defer rows.Close()

	return scanShiftsWithName(rows)
}

// ListClosedBefore は全ユーザーの entrada < boundary かつ閉じたシフトを
// ユーザー名付きで返す。
func (r *PostgresShiftRepo) ListClosedBefore(ctx context.Context, boundary time.Time) ([]ShiftWithName, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.entrada, s.salida, s.total_minutes, u.nombre
		 FROM shifts s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.entrada < $1 AND s.salida IS NOT NULL
		 ORDER BY s.entrada`,
		boundary,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed shifts: %w", err)
	}
	defer rows.Close()

	return scanShiftsWithName(rows)
}

// scanShiftsWithName はユーザー名付きシフト行をスキャンする。
func scanShiftsWithName(rows *sql.Rows) ([]ShiftWithName, error) {
	var shifts []ShiftWithName
	for rows.Next() {
		var s ShiftWithName
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.TotalMinutes, &s.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// compile-time interface check
var _ ShiftRepository = (*PostgresShiftRepo)(nil)
