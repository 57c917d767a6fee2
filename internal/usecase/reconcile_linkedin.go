package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/unipile"
)

type ReconcileLinkedInUseCase struct {
	Broker             LinkedInBroker
	AccountRepo        entity.LinkedInAccountRepositoryInterface
	SettingsRepo       entity.SettingsRepositoryInterface
	NotifyURL          string
	SuccessRedirectURL string
	Logger             *zap.Logger
}

func NewReconcileLinkedInUseCase(
	broker LinkedInBroker,
	accountRepo entity.LinkedInAccountRepositoryInterface,
	settingsRepo entity.SettingsRepositoryInterface,
	notifyURL, successRedirectURL string,
	logger *zap.Logger,
) *ReconcileLinkedInUseCase {
	return &ReconcileLinkedInUseCase{
		Broker:             broker,
		AccountRepo:        accountRepo,
		SettingsRepo:       settingsRepo,
		NotifyURL:          notifyURL,
		SuccessRedirectURL: successRedirectURL,
		Logger:             logger,
	}
}

// SyncAccounts (pull) reconcilia as contas do broker cujo name é o userID.
// Status diferente atualiza a linha existente; o histórico não cresce por aqui.
func (uc *ReconcileLinkedInUseCase) SyncAccounts(ctx context.Context, userID string) (*SyncAccountsOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError([]ValidationError{{"user_id", "is required"}})
	}

	out := &SyncAccountsOutput{Accounts: []AccountSyncResult{}}

	accounts, err := uc.Broker.ListAccounts(ctx)
	if err != nil {
		uc.Logger.Warn("⚠️ broker indisponível, sync vazio", zap.String("user_id", userID), zap.Error(err))
		return out, nil
	}
	out.BrokerAvailable = true

	for _, acc := range accounts {
		if acc.Name != userID {
			continue
		}

		status := NormalizeAccountStatus(acc.CurrentStatus())
		action, err := uc.reconcile(ctx, userID, acc.ID, status)
		if err != nil {
			return nil, err
		}
		if status.IsConnected() {
			if err := uc.linkAccount(ctx, userID, acc.ID); err != nil {
				return nil, err
			}
		}

		out.Accounts = append(out.Accounts, AccountSyncResult{AccountID: acc.ID, Status: status, Action: action})
	}

	uc.Logger.Info("🔄 contas LinkedIn sincronizadas",
		zap.String("user_id", userID),
		zap.Int("accounts", len(out.Accounts)),
	)
	return out, nil
}

func (uc *ReconcileLinkedInUseCase) reconcile(ctx context.Context, userID, accountID string, status entity.AccountStatus) (SyncAction, error) {
	latest, err := uc.AccountRepo.FindLatest(ctx, userID, accountID)
	if err != nil {
		return "", dbError("erro ao buscar status da conta", err)
	}

	switch {
	case latest == nil:
		row := &entity.LinkedInAccountStatus{ClientID: userID, AccountID: accountID, Status: status}
		if err := uc.AccountRepo.Insert(ctx, row); err != nil {
			return "", dbError("erro ao gravar status da conta", err)
		}
		return SyncInserted, nil
	case latest.Status != status:
		if err := uc.AccountRepo.UpdateStatus(ctx, latest.ID, status); err != nil {
			return "", dbError("erro ao atualizar status da conta", err)
		}
		return SyncUpdated, nil
	default:
		return SyncUnchanged, nil
	}
}

// HandleWebhook (push) grava cada evento novo como uma linha a mais no histórico.
// Evento com (client_id, account_id, status) já gravado volta como Duplicate.
func (uc *ReconcileLinkedInUseCase) HandleWebhook(ctx context.Context, payload WebhookPayload) (*WebhookResult, error) {
	var (
		accountID string
		clientID  string
		status    entity.AccountStatus
	)

	if env := payload.AccountStatus; env != nil {
		accountID = strings.TrimSpace(env.AccountID)
		status = NormalizeEnvelopeStatus(env.Message)
	} else {
		accountID = strings.TrimSpace(payload.AccountID)
		clientID = strings.TrimSpace(payload.Name)
		status = notifyStatus(payload.Status)
	}

	if accountID == "" {
		return nil, ErrMissingAccountID
	}

	if clientID == "" {
		owner, err := uc.resolveOwner(ctx, accountID)
		if err != nil {
			return nil, err
		}
		clientID = owner
	}

	log := uc.Logger.With(
		zap.String("client_id", clientID),
		zap.String("account_id", accountID),
		zap.String("status", string(status)),
	)

	result := &WebhookResult{ClientID: clientID, AccountID: accountID, Status: status}

	exists, err := uc.AccountRepo.Exists(ctx, clientID, accountID, status)
	if err != nil {
		return nil, dbError("erro ao verificar evento", err)
	}
	if exists {
		log.Info("♻️ evento duplicado ignorado")
		result.Duplicate = true
		return result, nil
	}

	row := &entity.LinkedInAccountStatus{ClientID: clientID, AccountID: accountID, Status: status}
	if err := uc.AccountRepo.Insert(ctx, row); err != nil {
		return nil, dbError("erro ao gravar evento", err)
	}

	if status.IsConnected() {
		if err := uc.linkAccount(ctx, clientID, accountID); err != nil {
			return nil, err
		}
	}

	log.Info("✅ evento LinkedIn gravado")
	return result, nil
}

// resolveOwner busca no broker o name da conta, que guarda o user_id local.
func (uc *ReconcileLinkedInUseCase) resolveOwner(ctx context.Context, accountID string) (string, error) {
	acc, err := uc.Broker.GetAccount(ctx, accountID)
	if err != nil {
		uc.Logger.Warn("❌ não foi possível resolver o dono da conta",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		return "", ErrIdentityUnresolvable
	}
	if strings.TrimSpace(acc.Name) == "" {
		return "", ErrIdentityUnresolvable
	}
	return strings.TrimSpace(acc.Name), nil
}

func (uc *ReconcileLinkedInUseCase) linkAccount(ctx context.Context, userID, accountID string) error {
	if err := uc.SettingsRepo.UpsertLinkedInAccount(ctx, userID, accountID); err != nil {
		return dbError("erro ao vincular conta às configurações", err)
	}
	return nil
}

// StartConnection gera o link hospedado onde o usuário conecta o LinkedIn.
func (uc *ReconcileLinkedInUseCase) StartConnection(ctx context.Context, userID string) (*StartConnectionOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError([]ValidationError{{"user_id", "is required"}})
	}

	link, err := uc.Broker.CreateHostedLink(ctx, unipile.HostedLinkInput{
		UserID:             userID,
		NotifyURL:          uc.NotifyURL,
		SuccessRedirectURL: uc.SuccessRedirectURL,
	})
	if err != nil {
		uc.Logger.Error("❌ falha ao gerar link de conexão", zap.String("user_id", userID), zap.Error(err))
		return nil, &TechnicalError{Code: CodeBroker, Message: "não foi possível iniciar a conexão com o LinkedIn", Err: err}
	}

	return &StartConnectionOutput{URL: link}, nil
}

func (uc *ReconcileLinkedInUseCase) CurrentStatuses(ctx context.Context, userID string) ([]*entity.LinkedInAccountStatus, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError([]ValidationError{{"user_id", "is required"}})
	}

	rows, err := uc.AccountRepo.ListCurrent(ctx, userID)
	if err != nil {
		return nil, dbError("erro ao listar contas", err)
	}
	if rows == nil {
		rows = []*entity.LinkedInAccountStatus{}
	}
	return rows, nil
}
