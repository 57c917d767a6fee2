package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type LinkedInAccountRepository struct {
	DB *sql.DB
}

func NewLinkedInAccountRepository(db *sql.DB) *LinkedInAccountRepository {
	return &LinkedInAccountRepository{DB: db}
}

func (r *LinkedInAccountRepository) Exists(ctx context.Context, clientID, accountID string, status entity.AccountStatus) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM linkedin_accounts WHERE client_id = $1 AND account_id = $2 AND status = $3)`,
		clientID, accountID, status,
	).Scan(&exists)
	return exists, err
}

// FindLatest devolve nil, nil quando a conta ainda não tem histórico.
func (r *LinkedInAccountRepository) FindLatest(ctx context.Context, clientID, accountID string) (*entity.LinkedInAccountStatus, error) {
	var s entity.LinkedInAccountStatus
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, client_id, account_id, status, created_at
		FROM linkedin_accounts
		WHERE client_id = $1 AND account_id = $2
		ORDER BY id DESC
		LIMIT 1`,
		clientID, accountID,
	).Scan(&s.ID, &s.ClientID, &s.AccountID, &s.Status, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LinkedInAccountRepository) Insert(ctx context.Context, row *entity.LinkedInAccountStatus) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO linkedin_accounts (client_id, account_id, status) VALUES ($1, $2, $3) RETURNING id, created_at`,
		row.ClientID, row.AccountID, row.Status,
	).Scan(&row.ID, &row.CreatedAt)
}

func (r *LinkedInAccountRepository) UpdateStatus(ctx context.Context, id int64, status entity.AccountStatus) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE linkedin_accounts SET status = $2 WHERE id = $1`, id, status)
	return err
}

// ListCurrent devolve a linha mais recente de cada conta do usuário.
func (r *LinkedInAccountRepository) ListCurrent(ctx context.Context, clientID string) ([]*entity.LinkedInAccountStatus, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT ON (account_id) id, client_id, account_id, status, created_at
		FROM linkedin_accounts
		WHERE client_id = $1
		ORDER BY account_id, id DESC`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.LinkedInAccountStatus{}
	for rows.Next() {
		var s entity.LinkedInAccountStatus
		if err := rows.Scan(&s.ID, &s.ClientID, &s.AccountID, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
