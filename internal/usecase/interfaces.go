package usecase

import (
	"context"

	"github.com/xavierca1/ligue-outreach/internal/infra/integration/unipile"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

// LinkedInBroker é o serviço externo que guarda as conexões LinkedIn.
type LinkedInBroker interface {
	ListAccounts(ctx context.Context) ([]unipile.Account, error)
	GetAccount(ctx context.Context, id string) (*unipile.Account, error)
	CreateHostedLink(ctx context.Context, input unipile.HostedLinkInput) (string, error)
}

// WorkflowDispatcher entrega o trigger: pela fila ou direto no webhook.
type WorkflowDispatcher interface {
	Dispatch(ctx context.Context, trigger queue.WorkflowTrigger) error
}

type EmailService interface {
	SendCampaign(to, subject, tmpl string, data mail.CampaignEmailData) error
}
