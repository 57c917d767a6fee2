package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

type SendCampaignEmailUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	SettingsRepo entity.SettingsRepositoryInterface
	EmailService EmailService
	Logger       *zap.Logger
}

func NewSendCampaignEmailUseCase(leadRepo entity.LeadRepositoryInterface, settingsRepo entity.SettingsRepositoryInterface, email EmailService, logger *zap.Logger) *SendCampaignEmailUseCase {
	return &SendCampaignEmailUseCase{
		LeadRepo:     leadRepo,
		SettingsRepo: settingsRepo,
		EmailService: email,
		Logger:       logger,
	}
}

// Execute envia um email por lead. Falha em um lead entra em Failed e o envio segue.
func (uc *SendCampaignEmailUseCase) Execute(ctx context.Context, input SendCampaignEmailInput) (*SendCampaignEmailOutput, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.UserID) == "" {
		errs = append(errs, ValidationError{"user_id", "is required"})
	}
	if len(input.LeadIDs) == 0 {
		errs = append(errs, ValidationError{"lead_ids", "must not be empty"})
	}
	if len(errs) > 0 {
		return nil, validationError(errs)
	}

	tmpl := ""
	settings, err := uc.SettingsRepo.FindByUserID(ctx, input.UserID)
	switch {
	case err == nil:
		tmpl = settings.EmailTemplate
	case !errors.Is(err, entity.ErrSettingsNotFound):
		return nil, dbError("erro ao buscar configurações", err)
	}

	out := &SendCampaignEmailOutput{
		Sent:    []string{},
		Skipped: []EmailFailure{},
		Failed:  []EmailFailure{},
	}

	for _, id := range input.LeadIDs {
		lead, err := uc.LeadRepo.FindByID(ctx, input.UserID, id)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				out.Skipped = append(out.Skipped, EmailFailure{LeadID: id, Reason: "lead não encontrado"})
				continue
			}
			out.Failed = append(out.Failed, EmailFailure{LeadID: id, Reason: err.Error()})
			continue
		}

		if lead.Email == "" || !isValidEmail(lead.Email) {
			out.Skipped = append(out.Skipped, EmailFailure{LeadID: id, Reason: "lead sem email válido"})
			continue
		}

		data := mail.CampaignEmailData{
			LeadName: lead.LeadName,
			Company:  lead.Company,
			Industry: lead.Industry,
			City:     lead.City,
			Campaign: lead.CampaignName,
		}
		if err := uc.EmailService.SendCampaign(lead.Email, input.Subject, tmpl, data); err != nil {
			uc.Logger.Warn("❌ falha ao enviar email", zap.String("lead_id", id), zap.Error(err))
			out.Failed = append(out.Failed, EmailFailure{LeadID: id, Reason: err.Error()})
			continue
		}

		if err := uc.LeadRepo.UpdateStatus(ctx, input.UserID, id, entity.LeadSent); err != nil {
			// o email já saiu; fica registrado como enviado mesmo sem o status
			uc.Logger.Error("⚠️ email enviado mas status não atualizado", zap.String("lead_id", id), zap.Error(err))
		}
		out.Sent = append(out.Sent, id)
	}

	uc.Logger.Info("📧 campanha enviada",
		zap.String("user_id", input.UserID),
		zap.Int("sent", len(out.Sent)),
		zap.Int("skipped", len(out.Skipped)),
		zap.Int("failed", len(out.Failed)),
	)
	return out, nil
}
