package entity

import (
	"context"
	"errors"
	"time"
)

var ErrSettingsNotFound = errors.New("configurações não encontradas")

// Settings tem uma linha por usuário (user_id único), sempre via upsert.
type Settings struct {
	UserID             string    `json:"user_id"`
	LinkedInAccountID  *string   `json:"linkedin_account_id"`
	WebhookURL         string    `json:"webhook_url"`
	LinkedInWebhookURL string    `json:"linkedin_webhook_url"`
	EmailTemplate      string    `json:"email_template"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type SettingsRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
	UpsertLinkedInAccount(ctx context.Context, userID, accountID string) error
}
