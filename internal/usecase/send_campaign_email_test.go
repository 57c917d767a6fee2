package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
)

func TestSendCampaignEmail(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepo)
	settings := new(MockSettingsRepo)
	email := new(MockEmailService)

	const tmpl = "Oi {{.LeadName}}"
	settings.On("FindByUserID", ctx, "u").Return(&entity.Settings{UserID: "u", EmailTemplate: tmpl}, nil)

	leads.On("FindByID", ctx, "u", "ok").Return(&entity.Lead{ID: "ok", Email: "ana@acme.com", LeadName: "Ana", Company: "acme.com", CampaignName: "Q1"}, nil)
	leads.On("FindByID", ctx, "u", "no-email").Return(&entity.Lead{ID: "no-email", Company: "beta.com"}, nil)
	leads.On("FindByID", ctx, "u", "smtp-fail").Return(&entity.Lead{ID: "smtp-fail", Email: "x@gamma.com"}, nil)
	leads.On("FindByID", ctx, "u", "gone").Return(nil, entity.ErrLeadNotFound)

	email.On("SendCampaign", "ana@acme.com", "Olá", tmpl, mail.CampaignEmailData{LeadName: "Ana", Company: "acme.com", Campaign: "Q1"}).Return(nil)
	email.On("SendCampaign", "x@gamma.com", "Olá", tmpl, mock.Anything).Return(errors.New("erro ao enviar email SMTP: 550"))

	leads.On("UpdateStatus", ctx, "u", "ok", entity.LeadSent).Return(nil)

	out, err := NewSendCampaignEmailUseCase(leads, settings, email, zap.NewNop()).Execute(ctx, SendCampaignEmailInput{
		UserID:  "u",
		LeadIDs: []string{"ok", "no-email", "smtp-fail", "gone"},
		Subject: "Olá",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ok"}, out.Sent)
	require.Len(t, out.Skipped, 2)
	assert.Equal(t, "no-email", out.Skipped[0].LeadID)
	assert.Equal(t, "gone", out.Skipped[1].LeadID)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "smtp-fail", out.Failed[0].LeadID)

	leads.AssertNumberOfCalls(t, "UpdateStatus", 1)
	email.AssertExpectations(t)
}

func TestSendCampaignEmailWithoutSettingsUsesDefaultTemplate(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepo)
	settings := new(MockSettingsRepo)
	email := new(MockEmailService)

	settings.On("FindByUserID", ctx, "u").Return(nil, entity.ErrSettingsNotFound)
	leads.On("FindByID", ctx, "u", "l1").Return(&entity.Lead{ID: "l1", Email: "a@b.com"}, nil)
	email.On("SendCampaign", "a@b.com", "", "", mock.Anything).Return(nil)
	leads.On("UpdateStatus", ctx, "u", "l1", entity.LeadSent).Return(errors.New("conn reset"))

	out, err := NewSendCampaignEmailUseCase(leads, settings, email, zap.NewNop()).
		Execute(ctx, SendCampaignEmailInput{UserID: "u", LeadIDs: []string{"l1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, out.Sent)
}

func TestSendCampaignEmailValidation(t *testing.T) {
	_, err := NewSendCampaignEmailUseCase(new(MockLeadRepo), new(MockSettingsRepo), new(MockEmailService), zap.NewNop()).
		Execute(context.Background(), SendCampaignEmailInput{UserID: "u"})
	assert.True(t, IsDomainError(err))
}
