package domain

import "time"

// Session is a time-bounded proof of authentication. The authoritative record
// lives in the session store; the token handed to the client only references
// it, so revocation takes effect immediately.
type Session struct {
	ID        string // uuid
	UserID    int64
	Email     string
	ExpiresAt time.Time
}

func NewSession(id string, userID int64, email string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
	}
}

// SessionEventType tags a session state change.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

// SessionEvent notifies subscribers about a login or sign-out.
type SessionEvent struct {
	Type      SessionEventType
	SessionID string
}
