package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type ManageSettingsUseCase struct {
	Repo   entity.SettingsRepositoryInterface
	Logger *zap.Logger
}

func NewManageSettingsUseCase(repo entity.SettingsRepositoryInterface, logger *zap.Logger) *ManageSettingsUseCase {
	return &ManageSettingsUseCase{Repo: repo, Logger: logger}
}

// Get devolve configurações vazias quando o usuário ainda não salvou nada.
func (uc *ManageSettingsUseCase) Get(ctx context.Context, userID string) (*entity.Settings, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	s, err := uc.Repo.FindByUserID(ctx, userID)
	if errors.Is(err, entity.ErrSettingsNotFound) {
		return &entity.Settings{UserID: userID}, nil
	}
	if err != nil {
		return nil, dbError("erro ao buscar configurações", err)
	}
	return s, nil
}

// Save grava os campos editáveis. O ponteiro da conta LinkedIn só muda pela reconciliação.
func (uc *ManageSettingsUseCase) Save(ctx context.Context, s entity.Settings) (*entity.Settings, error) {
	s.UserID = strings.TrimSpace(s.UserID)
	s.WebhookURL = strings.TrimSpace(s.WebhookURL)
	s.LinkedInWebhookURL = strings.TrimSpace(s.LinkedInWebhookURL)

	if errs := ValidateSettings(s); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if err := uc.Repo.Upsert(ctx, &s); err != nil {
		return nil, dbError("erro ao salvar configurações", err)
	}

	uc.Logger.Info("⚙️ configurações salvas", zap.String("user_id", s.UserID))
	return uc.Get(ctx, s.UserID)
}

func (uc *ManageSettingsUseCase) SetLinkedInAccount(ctx context.Context, userID, accountID string) error {
	var errs []ValidationError
	if strings.TrimSpace(userID) == "" {
		errs = append(errs, ValidationError{"user_id", "is required"})
	}
	if strings.TrimSpace(accountID) == "" {
		errs = append(errs, ValidationError{"account_id", "is required"})
	}
	if len(errs) > 0 {
		return validationError(errs)
	}

	if err := uc.Repo.UpsertLinkedInAccount(ctx, userID, accountID); err != nil {
		return dbError("erro ao vincular conta LinkedIn", err)
	}
	return nil
}
