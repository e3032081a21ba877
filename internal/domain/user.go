package domain

import "time"

// AdminUser is a back-office account. Only the password hash is ever stored.
type AdminUser struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func NewAdminUser(email, passwordHash string) *AdminUser {
	return &AdminUser{
		Email:        email,
		PasswordHash: passwordHash,
	}
}
