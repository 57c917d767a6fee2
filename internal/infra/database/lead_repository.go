package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const leadColumns = `id, user_id, company, email, region, industry, keywords, status, campaign_name,
	lead_name, phone, city, state, address, google_maps_url, lead_category, created_at, updated_at`

const leadColumnCount = 18

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// InsertBatch grava o lote num único INSERT dentro de uma transação: ou entra tudo ou nada.
func (r *LeadRepository) InsertBatch(ctx context.Context, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	query, args := buildInsertBatch(leads)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapLeadError(err)
	}
	return tx.Commit()
}

func buildInsertBatch(leads []*entity.Lead) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO leads (" + leadColumns + ") VALUES ")

	args := make([]interface{}, 0, len(leads)*leadColumnCount)
	for i, l := range leads {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < leadColumnCount; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*leadColumnCount+c+1)
		}
		sb.WriteString(")")

		args = append(args,
			l.ID, l.UserID, l.Company, l.Email, l.Region, l.Industry, keywordsArg(l.Keywords), l.Status,
			l.CampaignName, l.LeadName, l.Phone, l.City, l.State, l.Address, l.GoogleMapsURL,
			l.LeadCategory, l.CreatedAt, l.UpdatedAt,
		)
	}
	return sb.String(), args
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query, args := buildListQuery(filter)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func buildListQuery(f entity.LeadFilter) (string, []interface{}) {
	where := []string{"user_id = $1"}
	args := []interface{}{f.UserID}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Campaign != "" {
		args = append(args, f.Campaign)
		where = append(where, fmt.Sprintf("campaign_name = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(company ILIKE $%d OR email ILIKE $%d OR lead_name ILIKE $%d)", n, n, n))
	}

	query := "SELECT " + leadColumns + " FROM leads WHERE " + strings.Join(where, " AND ") + " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func (r *LeadRepository) FindByID(ctx context.Context, userID, id string) (*entity.Lead, error) {
	query := "SELECT " + leadColumns + " FROM leads WHERE user_id = $1 AND id = $2"

	l, err := scanLead(r.DB.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return l, err
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads SET
			company = $3, email = $4, region = $5, industry = $6, keywords = $7, status = $8,
			campaign_name = $9, lead_name = $10, phone = $11, city = $12, state = $13,
			address = $14, google_maps_url = $15, lead_category = $16, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		l.UserID, l.ID, l.Company, l.Email, l.Region, l.Industry, keywordsArg(l.Keywords), l.Status,
		l.CampaignName, l.LeadName, l.Phone, l.City, l.State, l.Address, l.GoogleMapsURL, l.LeadCategory,
	).Scan(&l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		return mapLeadError(err)
	}
	return nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, userID, id string, status entity.LeadStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $3, updated_at = NOW() WHERE user_id = $1 AND id = $2`,
		userID, id, status,
	)
	if err != nil {
		return err
	}
	return expectAffected(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	return expectAffected(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) CampaignStats(ctx context.Context, userID string) ([]entity.CampaignStat, error) {
	query := `
		SELECT campaign_name, status, COUNT(*)
		FROM leads
		WHERE user_id = $1
		GROUP BY campaign_name, status
		ORDER BY campaign_name, status
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		stats []entity.CampaignStat
		index = map[string]int{}
	)
	for rows.Next() {
		var (
			campaign string
			status   entity.LeadStatus
			count    int
		)
		if err := rows.Scan(&campaign, &status, &count); err != nil {
			return nil, err
		}

		i, ok := index[campaign]
		if !ok {
			stats = append(stats, entity.CampaignStat{CampaignName: campaign, ByStatus: map[entity.LeadStatus]int{}})
			i = len(stats) - 1
			index[campaign] = i
		}
		stats[i].ByStatus[status] = count
		stats[i].Total += count
	}
	return stats, rows.Err()
}

// keywordsArg grava '{}' em vez de NULL para slice nil.
func keywordsArg(kws []string) interface{} {
	if kws == nil {
		kws = []string{}
	}
	return pq.Array(kws)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(s rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	err := s.Scan(
		&l.ID, &l.UserID, &l.Company, &l.Email, &l.Region, &l.Industry, pq.Array(&l.Keywords), &l.Status,
		&l.CampaignName, &l.LeadName, &l.Phone, &l.City, &l.State, &l.Address, &l.GoogleMapsURL,
		&l.LeadCategory, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func mapLeadError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return entity.ErrDuplicateLead
	}
	return err
}
