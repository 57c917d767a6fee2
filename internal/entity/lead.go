package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLeadNotFound  = errors.New("lead não encontrado")
	ErrDuplicateLead = errors.New("lead já existe para este usuário")
)

type LeadStatus string

const (
	LeadResearched LeadStatus = "researched"
	LeadSent       LeadStatus = "sent"
	LeadReplied    LeadStatus = "replied"
	LeadBounced    LeadStatus = "bounced"
	LeadOpened     LeadStatus = "opened"
)

var leadStatuses = []LeadStatus{LeadResearched, LeadSent, LeadReplied, LeadBounced, LeadOpened}

func (s LeadStatus) IsValid() bool {
	for _, st := range leadStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ParseLeadStatus aceita qualquer caixa; valor desconhecido vira researched.
func ParseLeadStatus(raw string) LeadStatus {
	s := LeadStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	return LeadResearched
}

// Lead é o registro persistido na tabela leads.
type Lead struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Company       string     `json:"company"`
	Email         string     `json:"email"`
	Region        string     `json:"region"`
	Industry      string     `json:"industry"`
	Keywords      []string   `json:"keywords"`
	Status        LeadStatus `json:"status"`
	CampaignName  string     `json:"campaign_name"`
	LeadName      string     `json:"lead_name"`
	Phone         string     `json:"phone"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Address       string     `json:"address"`
	GoogleMapsURL string     `json:"google_maps_url"`
	LeadCategory  string     `json:"lead_category"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewLeadFromImport converte uma linha importada no registro persistido.
func NewLeadFromImport(userID string, row ImportRow) *Lead {
	now := time.Now()
	return &Lead{
		ID:            uuid.New().String(),
		UserID:        userID,
		Company:       row.Company,
		Email:         row.Email,
		Region:        row.Region,
		Industry:      row.Industry,
		Keywords:      row.Keywords,
		Status:        row.Status,
		CampaignName:  row.CampaignName,
		LeadName:      row.LeadName,
		Phone:         row.Phone,
		City:          row.City,
		State:         row.State,
		Address:       row.Address,
		GoogleMapsURL: row.GoogleMapsURL,
		LeadCategory:  row.LeadCategory,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

type LeadFilter struct {
	UserID   string
	Status   LeadStatus
	Campaign string
	Search   string
	Limit    int
	Offset   int
}

// LeadPatch carrega só os campos enviados na edição.
type LeadPatch struct {
	Company      *string     `json:"company,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Industry     *string     `json:"industry,omitempty"`
	Keywords     []string    `json:"keywords,omitempty"`
	Status       *LeadStatus `json:"status,omitempty"`
	CampaignName *string     `json:"campaign_name,omitempty"`
	LeadName     *string     `json:"lead_name,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	City         *string     `json:"city,omitempty"`
	State        *string     `json:"state,omitempty"`
	Address      *string     `json:"address,omitempty"`
	LeadCategory *string     `json:"lead_category,omitempty"`
}

// Apply copia o patch para o lead.
func (p LeadPatch) Apply(l *Lead) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&l.Company, p.Company)
	set(&l.Email, p.Email)
	set(&l.Industry, p.Industry)
	set(&l.CampaignName, p.CampaignName)
	set(&l.LeadName, p.LeadName)
	set(&l.Phone, p.Phone)
	set(&l.City, p.City)
	set(&l.State, p.State)
	set(&l.Address, p.Address)
	set(&l.LeadCategory, p.LeadCategory)
	if len(p.Keywords) > 0 {
		l.Keywords = p.Keywords
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	l.UpdatedAt = time.Now()
}

// CampaignStat conta leads de uma campanha por status.
type CampaignStat struct {
	CampaignName string             `json:"campaign_name"`
	Total        int                `json:"total"`
	ByStatus     map[LeadStatus]int `json:"by_status"`
}

type LeadRepositoryInterface interface {
	InsertBatch(ctx context.Context, leads []*Lead) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	FindByID(ctx context.Context, userID, id string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, userID, id string, status LeadStatus) error
	Delete(ctx context.Context, userID, id string) error
	CampaignStats(ctx context.Context, userID string) ([]CampaignStat, error)
}
