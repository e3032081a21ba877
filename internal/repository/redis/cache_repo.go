package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/cfg"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/clients"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const catalogCacheKey = "catalog:all"

// CacheRepo caches the public product list under a TTL. Cache failures are
// never fatal: a broken cache degrades to database reads.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

type productCacheModel struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Price           string     `json:"price"`
	Category        string     `json:"category"`
	Tag             string     `json:"tag"`
	Rating          float64    `json:"rating"`
	Reviews         int        `json:"reviews"`
	Benefits        []string   `json:"benefits"`
	ImageURL        string     `json:"image_url"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// GetCatalog returns the cached list or (nil, nil) on a miss.
func (c *CacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []productCacheModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("catalog cache unmarshal failed, dropping entry: %v", err)
		if err := c.client.Client.Del(context.Background(), catalogCacheKey).Err(); err != nil {
			c.logger.Warnf("catalog cache DEL failed: %v", err)
		}
		return nil, nil
	}

	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *cacheModelToEntity(&models[i]))
	}

	return products, nil
}

func (c *CacheRepo) SetCatalog(ctx context.Context, products []domain.Product) error {
	models := make([]productCacheModel, 0, len(products))
	for i := range products {
		models = append(models, *entityToCacheModel(&products[i]))
	}

	data, err := json.Marshal(models)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, catalogCacheKey, data, c.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) Invalidate(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, catalogCacheKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func cacheModelToEntity(m *productCacheModel) *domain.Product {
	return &domain.Product{
		ID: m.ID,
		Draft: domain.ProductDraft{
			Name:            m.Name,
			Description:     m.Description,
			LongDescription: m.LongDescription,
			Price:           m.Price,
			Category:        domain.Category(m.Category),
			Tag:             m.Tag,
			Rating:          decimal.NewFromFloat(m.Rating),
			Reviews:         m.Reviews,
			Benefits:        m.Benefits,
			ImageURL:        m.ImageURL,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func entityToCacheModel(p *domain.Product) *productCacheModel {
	return &productCacheModel{
		ID:              p.ID,
		Name:            p.Draft.Name,
		Description:     p.Draft.Description,
		LongDescription: p.Draft.LongDescription,
		Price:           p.Draft.Price,
		Category:        p.Draft.Category.String(),
		Tag:             p.Draft.Tag,
		Rating:          p.Draft.Rating.InexactFloat64(),
		Reviews:         p.Draft.Reviews,
		Benefits:        p.Draft.Benefits,
		ImageURL:        p.Draft.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
