package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/cfg"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const sessionChangeTopic = "session.changed"

// AuthUseCase verifies credentials, issues revocable sessions and notifies
// subscribers about session state changes. The token handed to the client is a
// signed reference to the server-side session record; deleting the record
// invalidates the token immediately, before its expiry.
type AuthUseCase struct {
	userRepo    AdminUserRepository
	sessionRepo SessionRepository
	cfg         *cfg.AuthCfg
	bus         EventBus.Bus
	logger      logger.Logger
}

func NewAuthUC(
	userRepo AdminUserRepository,
	sessionRepo SessionRepository,
	cfg *cfg.AuthCfg,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		bus:         EventBus.New(),
		logger:      logger,
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Login verifies the credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	expiresAt := time.Now().Add(a.cfg.SessionTTL)
	session := domain.NewSession(uuid.NewString(), user.ID, user.Email, expiresAt)

	if err := a.sessionRepo.Put(ctx, session, a.cfg.SessionTTL); err != nil {
		return nil, e.Wrap(op, err)
	}

	claims := sessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.cfg.JWTSecret)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.bus.Publish(sessionChangeTopic, domain.SessionEvent{
		Type:      domain.SessionSignedIn,
		SessionID: session.ID,
	})

	return NewLoginRes(token, session), nil
}

// Check resolves the token to its session. A missing, expired or malformed
// token yields e.ErrNoSession: absence of a session is a normal outcome, and
// every other failure also denies access — the guard fails closed.
func (a *AuthUseCase) Check(ctx context.Context, token string) (*domain.Session, error) {
	const op = "AuthUseCase.Check"

	sid, err := a.parseSessionID(token)
	if err != nil {
		return nil, e.Wrap(op, e.ErrNoSession)
	}

	session, err := a.sessionRepo.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, e.ErrNoSession) {
			return nil, e.Wrap(op, e.ErrNoSession)
		}
		return nil, e.Wrap(op, err)
	}

	return session, nil
}

// SignOut revokes the session behind the token and publishes the change. It
// never fails toward the caller; a sign-out with a dead token is a no-op.
func (a *AuthUseCase) SignOut(ctx context.Context, token string) {
	const op = "AuthUseCase.SignOut"

	sid, err := a.parseSessionID(token)
	if err != nil {
		return
	}

	if err := a.sessionRepo.Delete(ctx, sid); err != nil {
		a.logger.Warnf("session delete failed: %v", e.Wrap(op, err))
	}

	a.bus.Publish(sessionChangeTopic, domain.SessionEvent{
		Type:      domain.SessionSignedOut,
		SessionID: sid,
	})
}

// OnSessionChange subscribes fn to login/sign-out events. The returned
// function cancels the subscription and must be called on teardown.
func (a *AuthUseCase) OnSessionChange(fn func(domain.SessionEvent)) (func(), error) {
	handler := func(evt domain.SessionEvent) { fn(evt) }

	if err := a.bus.Subscribe(sessionChangeTopic, handler); err != nil {
		return nil, e.Wrap("AuthUseCase.OnSessionChange", err)
	}

	return func() {
		if err := a.bus.Unsubscribe(sessionChangeTopic, handler); err != nil {
			a.logger.Warnf("session-change unsubscribe failed: %v", err)
		}
	}, nil
}

// EnsureAdmin creates or updates the bootstrap admin account. Called once at
// startup when ADMIN_EMAIL/ADMIN_PASSWORD are configured.
func (a *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	const op = "AuthUseCase.EnsureAdmin"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cfg.BcryptCost)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := a.userRepo.Upsert(ctx, domain.NewAdminUser(email, string(hash))); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (a *AuthUseCase) parseSessionID(token string) (string, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrNoSession
		}
		return a.cfg.JWTSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims.SessionID == "" {
		return "", e.ErrNoSession
	}

	return claims.SessionID, nil
}
