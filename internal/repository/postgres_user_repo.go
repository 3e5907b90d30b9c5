package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/kintai/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// UpsertByName は表示名でユーザーを作成または取得する。
// 挿入と既存判定は単一のINSERT ... ON CONFLICTで行うため、
// 同名での同時ログインでも重複レコードは作られない。
func (r *PostgresUserRepo) UpsertByName(ctx context.Context, user *model.User) (*model.User, error) {
	created := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, nombre, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (nombre) DO NOTHING
		 RETURNING id, nombre, created_at`,
		user.ID, user.Name, user.CreatedAt,
	).Scan(&created.ID, &created.Name, &created.CreatedAt)

	if err == nil {
		return created, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// 競合して挿入されなかった場合は既存行を読む
	existing := &model.User{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, nombre, created_at FROM users WHERE nombre = $1`,
		user.Name,
	).Scan(&existing.ID, &existing.Name, &existing.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by name: %w", err)
	}

	return existing, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
