package pgdb

import (
	"context"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/pgdb/converter"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ContactRepo stores contact-form submissions in PostgreSQL.
type ContactRepo struct {
	pool *pgxpool.Pool
	conv converter.ContactMessageConverter
}

func NewContactRepo(pool *pgxpool.Pool, conv converter.ContactMessageConverter) *ContactRepo {
	return &ContactRepo{pool: pool, conv: conv}
}

func (r *ContactRepo) Insert(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, subject, message, created_at
	`

	var m converter.ContactMessageModel
	err := r.pool.QueryRow(ctx, query, msg.Name, msg.Email, msg.Subject, msg.Message).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&m), nil
}
