package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
)

type mockProductRepo struct {
	mu sync.Mutex

	ListFn   func(ctx context.Context) ([]domain.Product, error)
	InsertFn func(ctx context.Context, draft *domain.ProductDraft) (*domain.Product, error)
	UpdateFn func(ctx context.Context, id int64, draft *domain.ProductDraft) (*domain.Product, error)
	DeleteFn func(ctx context.Context, id int64) error

	listCalls   int
	insertCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockProductRepo) Insert(ctx context.Context, draft *domain.ProductDraft) (*domain.Product, error) {
	m.mu.Lock()
	m.insertCalls++
	m.mu.Unlock()
	if m.InsertFn != nil {
		return m.InsertFn(ctx, draft)
	}
	return &domain.Product{ID: 1, Draft: *draft, CreatedAt: time.Now()}, nil
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, draft *domain.ProductDraft) (*domain.Product, error) {
	m.mu.Lock()
	m.updateCalls++
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, draft)
	}
	now := time.Now()
	return &domain.Product{ID: id, Draft: *draft, CreatedAt: now, UpdatedAt: &now}, nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductRepo) calls() (list, insert, update, del int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.insertCalls, m.updateCalls, m.deleteCalls
}

type mockOutboxRepo struct {
	mu    sync.Mutex
	added []*OutboxEvent
}

func (m *mockOutboxRepo) Add(ctx context.Context, event *OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, event)
	return nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

func (m *mockOutboxRepo) events() []*OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*OutboxEvent(nil), m.added...)
}

// mockTxManager runs fn directly against the same context, no transaction.
type mockTxManager struct {
	DoFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.DoFn != nil {
		return m.DoFn(ctx, fn)
	}
	return fn(ctx)
}

type mockImagesInfra struct {
	mu sync.Mutex

	UploadFn func(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)

	uploadCalls int
	cleaned     []string
}

func (m *mockImagesInfra) UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error) {
	m.mu.Lock()
	m.uploadCalls++
	m.mu.Unlock()
	if m.UploadFn != nil {
		return m.UploadFn(ctx, req)
	}
	return NewUploadImageRes("key", "https://cdn.example.com/images/key"), nil
}

func (m *mockImagesInfra) CleanupImages(keys []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleaned = append(m.cleaned, keys...)
}

func (m *mockImagesInfra) state() (uploads int, cleaned []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadCalls, append([]string(nil), m.cleaned...)
}

type mockCacheRepo struct {
	mu sync.Mutex

	catalog     []domain.Product
	setCalls    int
	invalidated int
}

func (m *mockCacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog, nil
}

func (m *mockCacheRepo) SetCatalog(ctx context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	m.catalog = products
	return nil
}

func (m *mockCacheRepo) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
	m.catalog = nil
	return nil
}

func (m *mockCacheRepo) invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidated
}

// stubSessions satisfies AuthUC for catalog tests; only the session-change
// subscription is functional.
type stubSessions struct {
	mu       sync.Mutex
	handlers []func(domain.SessionEvent)
}

func (s *stubSessions) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	return nil, e.ErrInvalidCredentials
}

func (s *stubSessions) Check(ctx context.Context, token string) (*domain.Session, error) {
	return nil, e.ErrNoSession
}

func (s *stubSessions) SignOut(ctx context.Context, token string) {}

func (s *stubSessions) OnSessionChange(fn func(domain.SessionEvent)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, fn)
	return func() {}, nil
}

func (s *stubSessions) emit(evt domain.SessionEvent) {
	s.mu.Lock()
	handlers := append(([]func(domain.SessionEvent))(nil), s.handlers...)
	s.mu.Unlock()
	for _, fn := range handlers {
		fn(evt)
	}
}

type mockAdminUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.AdminUser
}

func newMockAdminUserRepo() *mockAdminUserRepo {
	return &mockAdminUserRepo{users: make(map[string]*domain.AdminUser)}
}

func (m *mockAdminUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	return user, nil
}

func (m *mockAdminUserRepo) Upsert(ctx context.Context, user *domain.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepo) Put(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, e.ErrNoSession
	}
	return session, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type mockContactRepo struct {
	mu       sync.Mutex
	inserted []*domain.ContactMessage
}

func (m *mockContactRepo) Insert(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *msg
	stored.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, &stored)
	return &stored, nil
}
