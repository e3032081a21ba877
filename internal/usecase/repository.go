package usecase

import (
	"context"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
)

// TxManager runs fn inside a database transaction. The transaction is placed
// in the context handed to fn; write repositories pick it up from there.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	// List returns all products ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, draft *domain.ProductDraft) (*domain.Product, error)
	// Update replaces every field of the record; nothing is merged from the
	// previous row.
	Update(ctx context.Context, id int64, draft *domain.ProductDraft) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Upsert(ctx context.Context, user *domain.AdminUser) error
}

type ContactRepository interface {
	Insert(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
}

type SessionRepository interface {
	Put(ctx context.Context, session *domain.Session, ttl time.Duration) error
	// Get returns e.ErrNoSession when the id is unknown or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type CacheRepository interface {
	// GetCatalog returns (nil, nil) on a cache miss.
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	SetCatalog(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type OutboxRepository interface {
	Add(ctx context.Context, event *OutboxEvent) error
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
