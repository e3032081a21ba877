package usecase

import (
	"context"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
)

// CatalogUC is the catalog management surface consumed by the delivery layer.
type CatalogUC interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	PublicCatalog(ctx context.Context, category string) ([]domain.Product, error)
	SaveProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, req *DeleteProductReq) error
}

// AuthUC gates the admin area.
type AuthUC interface {
	Login(ctx context.Context, req *LoginReq) (*LoginRes, error)
	Check(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, token string)
	OnSessionChange(fn func(domain.SessionEvent)) (func(), error)
}

// ContactUC persists contact-form submissions.
type ContactUC interface {
	SubmitMessage(ctx context.Context, req *SubmitContactReq) (*domain.ContactMessage, error)
}
