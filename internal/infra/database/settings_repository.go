package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.Settings, error) {
	var (
		s         entity.Settings
		accountID sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, linkedin_account_id, webhook_url, linkedin_webhook_url, email_template, updated_at
		FROM settings WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &accountID, &s.WebhookURL, &s.LinkedInWebhookURL, &s.EmailTemplate, &s.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	if accountID.Valid {
		s.LinkedInAccountID = &accountID.String
	}
	return &s, nil
}

// Upsert não toca em linkedin_account_id: ele é da reconciliação.
func (r *SettingsRepository) Upsert(ctx context.Context, s *entity.Settings) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO settings (user_id, webhook_url, linkedin_webhook_url, email_template, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			webhook_url = EXCLUDED.webhook_url,
			linkedin_webhook_url = EXCLUDED.linkedin_webhook_url,
			email_template = EXCLUDED.email_template,
			updated_at = NOW()
		RETURNING updated_at`,
		s.UserID, s.WebhookURL, s.LinkedInWebhookURL, s.EmailTemplate,
	).Scan(&s.UpdatedAt)
}

func (r *SettingsRepository) UpsertLinkedInAccount(ctx context.Context, userID, accountID string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (user_id, linkedin_account_id, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET linkedin_account_id = EXCLUDED.linkedin_account_id, updated_at = NOW()`,
		userID, accountID,
	)
	return err
}
