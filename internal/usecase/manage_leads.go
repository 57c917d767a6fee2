package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const (
	defaultLeadsLimit = 50
	maxLeadsLimit     = 500
)

type ManageLeadsUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
}

func NewManageLeadsUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{Repo: repo, Logger: logger}
}

func (uc *ManageLeadsUseCase) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	if err := requireUser(filter.UserID); err != nil {
		return nil, err
	}
	if filter.Status != "" {
		filter.Status = entity.LeadStatus(strings.ToLower(string(filter.Status)))
		if !filter.Status.IsValid() {
			return nil, validationError([]ValidationError{{"status", "must be one of researched, sent, replied, bounced, opened"}})
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLeadsLimit
	}
	if filter.Limit > maxLeadsLimit {
		filter.Limit = maxLeadsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)

	leads, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, dbError("erro ao listar leads", err)
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

func (uc *ManageLeadsUseCase) Get(ctx context.Context, userID, id string) (*entity.Lead, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	lead, err := uc.Repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, leadError(err)
	}
	return lead, nil
}

// Update aplica só os campos presentes no patch.
func (uc *ManageLeadsUseCase) Update(ctx context.Context, userID, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	if errs := ValidateLeadPatch(patch); len(errs) > 0 {
		return nil, validationError(errs)
	}

	lead, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(lead)
	if lead.Company == "" && lead.Email == "" {
		return nil, validationError([]ValidationError{{"company", "company and email cannot both be empty"}})
	}

	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, leadError(err)
	}

	uc.Logger.Info("✏️ lead atualizado", zap.String("user_id", userID), zap.String("lead_id", id))
	return lead, nil
}

func (uc *ManageLeadsUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := uc.Repo.Delete(ctx, userID, id); err != nil {
		return leadError(err)
	}

	uc.Logger.Info("🗑️ lead removido", zap.String("user_id", userID), zap.String("lead_id", id))
	return nil
}

func (uc *ManageLeadsUseCase) CampaignStats(ctx context.Context, userID string) ([]entity.CampaignStat, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	stats, err := uc.Repo.CampaignStats(ctx, userID)
	if err != nil {
		return nil, dbError("erro ao calcular estatísticas", err)
	}
	if stats == nil {
		stats = []entity.CampaignStat{}
	}
	return stats, nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return validationError([]ValidationError{{"user_id", "is required"}})
	}
	return nil
}

func leadError(err error) error {
	switch {
	case errors.Is(err, entity.ErrLeadNotFound):
		return &DomainError{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, entity.ErrDuplicateLead):
		return &DomainError{Code: CodeValidation, Message: err.Error()}
	default:
		return dbError("erro ao acessar leads", err)
	}
}
