package domain

import "time"

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

func NewContactMessage(name, email, subject, message string) *ContactMessage {
	return &ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
}
