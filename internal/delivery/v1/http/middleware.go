package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

const (
	sessionCookieName = "admin_session"
	adminLoginURL     = "/admin/login"
)

type sessionCtxKey struct{}

// SessionFromCtx returns the admin session placed by the guard, or
// e.ErrNoSession when the request never went through it.
func SessionFromCtx(ctx context.Context) (*domain.Session, error) {
	session, ok := ctx.Value(sessionCtxKey{}).(*domain.Session)
	if !ok {
		return nil, e.ErrNoSession
	}
	return session, nil
}

func withSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionGuard closes the admin surface behind a verified session. Any
// failure to confirm the session, including errors from the session store,
// resolves to 401 with the login entry point. Never fail open.
type SessionGuard struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewSessionGuard(authUC usecase.AuthUC, logger logger.Logger) *SessionGuard {
	return &SessionGuard{
		authUC: authUC,
		logger: logger,
	}
}

func (g *SessionGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			g.writeUnauthorized(w)
			return
		}

		session, err := g.authUC.Check(r.Context(), token)
		if err != nil {
			if !errors.Is(err, e.ErrNoSession) {
				g.logger.Warnf("session check failed: %v", err)
			}
			g.writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

func (g *SessionGuard) writeUnauthorized(w http.ResponseWriter) {
	resp := NewErrorResponse(http.StatusUnauthorized, e.ErrNoSession.Error())
	resp.LoginURL = adminLoginURL
	WriteSuccess(w, http.StatusUnauthorized, resp)
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
