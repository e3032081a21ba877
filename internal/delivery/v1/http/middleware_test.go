package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUC drives the guard from tests.
type stubAuthUC struct {
	CheckFn func(ctx context.Context, token string) (*domain.Session, error)
}

func (s *stubAuthUC) Login(ctx context.Context, req *usecase.LoginReq) (*usecase.LoginRes, error) {
	return nil, e.ErrInvalidCredentials
}

func (s *stubAuthUC) Check(ctx context.Context, token string) (*domain.Session, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, token)
	}
	return nil, e.ErrNoSession
}

func (s *stubAuthUC) SignOut(ctx context.Context, token string) {}

func (s *stubAuthUC) OnSessionChange(fn func(domain.SessionEvent)) (func(), error) {
	return func() {}, nil
}

func TestSessionGuard_NoTokenIsRejectedWithLoginEntryPoint(t *testing.T) {
	guard := NewSessionGuard(&stubAuthUC{}, logger.NewSlogLogger())

	nextCalled := false
	handler := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/products", nil))

	assert.False(t, nextCalled, "the guarded handler must never run without a session")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, adminLoginURL, resp.LoginURL)
}

func TestSessionGuard_FailsClosedOnSessionStoreError(t *testing.T) {
	guard := NewSessionGuard(&stubAuthUC{
		CheckFn: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, errors.New("redis: connection refused")
		},
	}, logger.NewSlogLogger())

	nextCalled := false
	handler := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, nextCalled, "an undetermined session state must deny access, not grant it")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuard_ValidSessionReachesHandler(t *testing.T) {
	session := domain.NewSession("sess-1", 1, "admin@lishaa.in", time.Now().Add(time.Hour))

	guard := NewSessionGuard(&stubAuthUC{
		CheckFn: func(ctx context.Context, token string) (*domain.Session, error) {
			require.Equal(t, "valid-token", token)
			return session, nil
		},
	}, logger.NewSlogLogger())

	var got *domain.Session
	handler := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = SessionFromCtx(r.Context())
		require.NoError(t, err)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, session.ID, got.ID)
}

func TestSessionGuard_ReadsSessionCookie(t *testing.T) {
	guard := NewSessionGuard(&stubAuthUC{
		CheckFn: func(ctx context.Context, token string) (*domain.Session, error) {
			require.Equal(t, "cookie-token", token)
			return domain.NewSession("sess-1", 1, "admin@lishaa.in", time.Now().Add(time.Hour)), nil
		},
	}, logger.NewSlogLogger())

	handler := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "cookie-token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
