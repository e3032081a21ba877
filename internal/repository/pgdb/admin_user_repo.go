package pgdb

import (
	"context"
	"errors"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/pgdb/converter"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// AdminUserRepo implements the admin account repository on top of PostgreSQL.
type AdminUserRepo struct {
	pool *pgxpool.Pool
	conv converter.AdminUserConverter
}

func NewAdminUserRepo(pool *pgxpool.Pool, conv converter.AdminUserConverter) *AdminUserRepo {
	return &AdminUserRepo{pool: pool, conv: conv}
}

func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE email = $1
	`

	var m converter.AdminUserModel
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&m.ID, &m.Email, &m.PasswordHash, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&m), nil
}

// Upsert creates the account or rotates its password hash.
func (r *AdminUserRepo) Upsert(ctx context.Context, user *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email)
		DO UPDATE SET password_hash = EXCLUDED.password_hash
	`

	if _, err := r.pool.Exec(ctx, query, user.Email, user.PasswordHash); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
