package entity

import (
	"context"
	"time"
)

// AccountStatus é o vocabulário canônico do status de uma conexão LinkedIn.
// O mapeamento estrito do webhook pode gravar valores fora desse conjunto.
type AccountStatus string

const (
	AccountCreationSuccess AccountStatus = "CREATION_SUCCESS"
	AccountReconnected     AccountStatus = "RECONNECTED"
	AccountConnecting      AccountStatus = "CONNECTING"
	AccountError           AccountStatus = "ERROR"
	AccountDeletion        AccountStatus = "DELETION"
)

func (s AccountStatus) IsCanonical() bool {
	switch s {
	case AccountCreationSuccess, AccountReconnected, AccountConnecting, AccountError, AccountDeletion:
		return true
	}
	return false
}

// IsConnected indica os status que confirmam a conta para o usuário.
func (s AccountStatus) IsConnected() bool {
	return s == AccountCreationSuccess || s == AccountReconnected
}

// LinkedInAccountStatus é uma linha do histórico em linkedin_accounts.
// A linha mais recente por (ClientID, AccountID) é o status atual.
type LinkedInAccountStatus struct {
	ID        int64         `json:"id"`
	ClientID  string        `json:"client_id"`
	AccountID string        `json:"account_id"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type LinkedInAccountRepositoryInterface interface {
	Exists(ctx context.Context, clientID, accountID string, status AccountStatus) (bool, error)
	FindLatest(ctx context.Context, clientID, accountID string) (*LinkedInAccountStatus, error)
	Insert(ctx context.Context, row *LinkedInAccountStatus) error
	UpdateStatus(ctx context.Context, id int64, status AccountStatus) error
	ListCurrent(ctx context.Context, clientID string) ([]*LinkedInAccountStatus, error)
}
