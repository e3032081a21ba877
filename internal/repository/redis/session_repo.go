package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/clients"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo is the authoritative session store. Sessions live under a TTL
// and disappear on expiry; deleting the key revokes the session immediately.
type SessionRepo struct {
	client *clients.RedisClient
}

func NewSessionRepo(client *clients.RedisClient) *SessionRepo {
	return &SessionRepo{client: client}
}

type sessionModel struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionRepo) Put(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(sessionModel{
		ID:        session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get returns e.ErrNoSession for an unknown or expired id; other failures are
// store errors the caller must not treat as "authenticated".
func (s *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrNoSession
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var m sessionModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return domain.NewSession(m.ID, m.UserID, m.Email, m.ExpiresAt), nil
}

func (s *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := s.client.Client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}
