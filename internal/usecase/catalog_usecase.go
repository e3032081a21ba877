package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

// CatalogUseCase coordinates the admin product-catalog flow: load, create,
// full-replace update and delete, with the image upload sequenced strictly
// before the record write.
type CatalogUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	txManager   TxManager
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	logger      logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{} // session ids with a submission in flight

	// Reload sequencing: a reload result is only installed as the snapshot if
	// no later reload has been issued since it started.
	loadSeq     uint64
	snapshotSeq uint64
	snapshot    []domain.Product

	unsubscribe func()
}

func NewCatalogUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	sessions AuthUC,
	logger logger.Logger,
) (*CatalogUseCase, error) {
	c := &CatalogUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		logger:      logger,
		inFlight:    make(map[string]struct{}),
	}

	// A signed-out session may not keep holding its submission slot.
	unsubscribe, err := sessions.OnSessionChange(func(evt domain.SessionEvent) {
		if evt.Type == domain.SessionSignedOut {
			c.releaseSave(evt.SessionID)
		}
	})
	if err != nil {
		return nil, e.Wrap("CatalogUseCase.NewCatalogUC", err)
	}
	c.unsubscribe = unsubscribe

	return c, nil
}

// Close releases the session-change subscription.
func (c *CatalogUseCase) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// ListProducts reloads the authoritative product list, newest first. A failed
// reload leaves the previous snapshot untouched; a stale reload result never
// overwrites a newer one.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq > c.snapshotSeq {
		c.snapshotSeq = seq
		c.snapshot = products
	}

	return append([]domain.Product(nil), c.snapshot...), nil
}

// Snapshot returns the last successfully loaded product list.
func (c *CatalogUseCase) Snapshot() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Product(nil), c.snapshot...)
}

// PublicCatalog serves the storefront list through the read cache, optionally
// narrowed to one category.
func (c *CatalogUseCase) PublicCatalog(ctx context.Context, category string) ([]domain.Product, error) {
	const op = "CatalogUseCase.PublicCatalog"

	products, err := c.cacheRepo.GetCatalog(ctx)
	if err != nil {
		c.logger.Warnf("catalog cache read failed: %v", e.Wrap(op, err))
		products = nil
	}

	if products == nil {
		products, err = c.productRepo.List(ctx)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		go func(cached []domain.Product) {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := c.cacheRepo.SetCatalog(bgCtx, cached); err != nil {
				c.logger.Warnf("failed to cache catalog in background: %v", e.Wrap(op, err))
			}
		}(products)
	}

	if category == "" {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Draft.Category.String() == category {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

// SaveProduct stages, validates and submits one product. Validation runs
// before any remote call; the image upload (if a new file is attached) must
// complete and yield a public URL before the record write is issued; an upload
// failure aborts the submission without touching the database. The record
// mutation and its outbox event commit in one transaction.
func (c *CatalogUseCase) SaveProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.SaveProduct"

	if err := c.acquireSave(req.SessionID); err != nil {
		return nil, e.Wrap(op, err)
	}
	defer c.releaseSave(req.SessionID)

	if err := req.Draft.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Draft.FilterBenefits()

	var uploaded *UploadImageRes
	if req.Image != nil {
		res, err := c.imagesInfra.UploadImage(ctx, NewUploadImageReq(req.Image))
		if err != nil {
			return nil, e.Wrap(op, e.Wrap(e.ErrUploadFailed.Error(), err))
		}
		uploaded = res
		req.Draft.ImageURL = res.PublicURL
	}

	var product *domain.Product
	err := c.txManager.Do(ctx, func(txCtx context.Context) error {
		var (
			err       error
			eventType string
		)

		if req.ProductID == nil {
			product, err = c.productRepo.Insert(txCtx, req.Draft)
			eventType = EventProductCreated
		} else {
			product, err = c.productRepo.Update(txCtx, *req.ProductID, req.Draft)
			eventType = EventProductUpdated
		}
		if err != nil {
			return err
		}

		return c.outboxRepo.Add(txCtx, c.newCatalogEvent(eventType, product.ID, product))
	})
	if err != nil {
		if uploaded != nil {
			c.logger.Warnf("cleaning up orphaned image after failed save, key: %s, error: %v", uploaded.Key, err)
			c.imagesInfra.CleanupImages([]string{uploaded.Key})
		}
		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalog(ctx, op)

	return product, nil
}

// DeleteProduct removes a product once the caller has confirmed. The record is
// never removed optimistically; cache and snapshot change only after the
// database acknowledges.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, req *DeleteProductReq) error {
	const op = "CatalogUseCase.DeleteProduct"

	if !req.Confirmed {
		return e.Wrap(op, e.ErrDeleteNotConfirmed)
	}

	err := c.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := c.productRepo.Delete(txCtx, req.ID); err != nil {
			return err
		}

		return c.outboxRepo.Add(txCtx, c.newCatalogEvent(EventProductDeleted, req.ID, nil))
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	c.invalidateCatalog(ctx, op)

	return nil
}

// acquireSave takes the per-session submission slot. At most one create/edit
// submission is in flight per admin session; a second one is refused.
func (c *CatalogUseCase) acquireSave(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[sessionID]; busy {
		return e.ErrSaveInProgress
	}
	c.inFlight[sessionID] = struct{}{}

	return nil
}

func (c *CatalogUseCase) releaseSave(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, sessionID)
}

func (c *CatalogUseCase) invalidateCatalog(ctx context.Context, op string) {
	if err := c.cacheRepo.Invalidate(ctx); err != nil {
		c.logger.Warnf("catalog cache invalidation failed: %v", e.Wrap(op, err))
	}
}

type catalogEventPayload struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ProductID  int64     `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Name       string    `json:"name,omitempty"`
	Category   string    `json:"category,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
}

func (c *CatalogUseCase) newCatalogEvent(eventType string, productID int64, product *domain.Product) *OutboxEvent {
	payload := catalogEventPayload{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
	if product != nil {
		payload.Name = product.Draft.Name
		payload.Category = product.Draft.Category.String()
		payload.ImageURL = product.Draft.ImageURL
	}

	// Marshalling a plain struct of strings and ints cannot fail.
	data, _ := json.Marshal(payload)

	return NewOutboxEvent(payload.EventID, eventType, productID, data)
}
