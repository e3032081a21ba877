package usecase

import (
	"context"
	"testing"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitMessage_TrimsAndStores(t *testing.T) {
	repo := &mockContactRepo{}
	uc := NewContactUC(repo, logger.NewSlogLogger())

	msg, err := uc.SubmitMessage(context.Background(), NewSubmitContactReq(
		"  Priya  ", " priya@example.com ", "  Bulk order ", "  Do you ship to Chennai?  ",
	))
	require.NoError(t, err)

	assert.Equal(t, "Priya", msg.Name)
	assert.Equal(t, "priya@example.com", msg.Email)
	assert.Equal(t, "Bulk order", msg.Subject)
	assert.Equal(t, "Do you ship to Chennai?", msg.Message)
	assert.NotZero(t, msg.ID)
}

func TestSubmitMessage_RequiredFields(t *testing.T) {
	repo := &mockContactRepo{}
	uc := NewContactUC(repo, logger.NewSlogLogger())

	tests := []struct {
		name string
		req  *SubmitContactReq
	}{
		{"blank name", NewSubmitContactReq("  ", "a@b.c", "", "hello")},
		{"blank email", NewSubmitContactReq("Priya", "", "", "hello")},
		{"blank message", NewSubmitContactReq("Priya", "a@b.c", "", "   ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SubmitMessage(context.Background(), tt.req)
			assert.ErrorIs(t, err, e.ErrMissingFields)
		})
	}

	assert.Empty(t, repo.inserted)
}
