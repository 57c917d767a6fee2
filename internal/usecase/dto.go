package usecase

import "github.com/xavierca1/ligue-outreach/internal/entity"

type CommitImportInput struct {
	UserID       string             `json:"user_id"`
	CampaignName string             `json:"campaign_name"`
	Rows         []entity.ImportRow `json:"rows"`
}

type CommitImportOutput struct {
	Inserted int `json:"inserted"`
	Batches  int `json:"batches"`
}

// SyncAction descreve o que o pull fez com cada conta.
type SyncAction string

const (
	SyncInserted  SyncAction = "inserted"
	SyncUpdated   SyncAction = "updated"
	SyncUnchanged SyncAction = "unchanged"
)

type AccountSyncResult struct {
	AccountID string               `json:"account_id"`
	Status    entity.AccountStatus `json:"status"`
	Action    SyncAction           `json:"action"`
}

// WebhookPayload cobre os dois formatos que o broker manda.
// Notify callback: AccountID/Status/Name. Envelope: AccountStatus.
type WebhookPayload struct {
	AccountID     string                 `json:"account_id"`
	Status        string                 `json:"status"`
	Name          string                 `json:"name"`
	AccountStatus *AccountStatusEnvelope `json:"AccountStatus,omitempty"`
}

type AccountStatusEnvelope struct {
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
	Message     string `json:"message"`
}

type WebhookResult struct {
	ClientID  string               `json:"client_id"`
	AccountID string               `json:"account_id"`
	Status    entity.AccountStatus `json:"status"`
	Duplicate bool                 `json:"duplicate"`
}

type StartConnectionOutput struct {
	URL string `json:"url"`
}

type WorkflowKind string

const (
	WorkflowSearch   WorkflowKind = "search"
	WorkflowLinkedIn WorkflowKind = "linkedin"
)

type TriggerWorkflowInput struct {
	UserID string                 `json:"user_id"`
	Kind   WorkflowKind           `json:"kind"`
	Params map[string]interface{} `json:"params"`
}

type TriggerWorkflowOutput struct {
	TriggerID string `json:"trigger_id"`
	Queued    bool   `json:"queued"`
}

type SendCampaignEmailInput struct {
	UserID  string   `json:"user_id"`
	LeadIDs []string `json:"lead_ids"`
	Subject string   `json:"subject"`
}

type EmailFailure struct {
	LeadID string `json:"lead_id"`
	Reason string `json:"reason"`
}

type SendCampaignEmailOutput struct {
	Sent    []string       `json:"sent"`
	Skipped []EmailFailure `json:"skipped"`
	Failed  []EmailFailure `json:"failed"`
}

// SyncAccountsOutput.BrokerAvailable é false quando a listagem falhou e o resultado veio vazio.
type SyncAccountsOutput struct {
	Accounts        []AccountSyncResult `json:"accounts"`
	BrokerAvailable bool                `json:"broker_available"`
}
