package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

type TriggerWorkflowUseCase struct {
	SettingsRepo entity.SettingsRepositoryInterface
	Dispatcher   WorkflowDispatcher
	Queued       bool // true quando o Dispatcher publica na fila
	Logger       *zap.Logger
}

func NewTriggerWorkflowUseCase(settingsRepo entity.SettingsRepositoryInterface, dispatcher WorkflowDispatcher, queued bool, logger *zap.Logger) *TriggerWorkflowUseCase {
	return &TriggerWorkflowUseCase{
		SettingsRepo: settingsRepo,
		Dispatcher:   dispatcher,
		Queued:       queued,
		Logger:       logger,
	}
}

func (uc *TriggerWorkflowUseCase) Execute(ctx context.Context, input TriggerWorkflowInput) (*TriggerWorkflowOutput, error) {
	if err := requireUser(input.UserID); err != nil {
		return nil, err
	}
	if input.Kind != WorkflowSearch && input.Kind != WorkflowLinkedIn {
		return nil, validationError([]ValidationError{{"kind", "must be search or linkedin"}})
	}

	settings, err := uc.SettingsRepo.FindByUserID(ctx, input.UserID)
	if err != nil && !errors.Is(err, entity.ErrSettingsNotFound) {
		return nil, dbError("erro ao buscar configurações", err)
	}

	webhook := ""
	if settings != nil {
		webhook = settings.WebhookURL
		if input.Kind == WorkflowLinkedIn {
			webhook = settings.LinkedInWebhookURL
		}
	}
	if webhook == "" {
		field := "webhook_url"
		if input.Kind == WorkflowLinkedIn {
			field = "linkedin_webhook_url"
		}
		return nil, validationError([]ValidationError{{field, "is not configured"}})
	}

	trigger := queue.WorkflowTrigger{
		TriggerID:   uuid.New().String(),
		UserID:      input.UserID,
		Kind:        string(input.Kind),
		WebhookURL:  webhook,
		Params:      input.Params,
		RequestedAt: time.Now().UTC(),
	}

	log := uc.Logger.With(
		zap.String("trigger_id", trigger.TriggerID),
		zap.String("user_id", trigger.UserID),
		zap.String("kind", trigger.Kind),
	)

	if err := uc.Dispatcher.Dispatch(ctx, trigger); err != nil {
		log.Error("❌ falha ao disparar workflow", zap.Error(err))
		code := CodeDispatch
		if uc.Queued {
			code = CodeBroker
		}
		return nil, &TechnicalError{Code: code, Message: "não foi possível disparar o workflow", Err: err}
	}

	log.Info("🚀 workflow disparado", zap.Bool("queued", uc.Queued))
	return &TriggerWorkflowOutput{TriggerID: trigger.TriggerID, Queued: uc.Queued}, nil
}
