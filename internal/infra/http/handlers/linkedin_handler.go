package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

const maxWebhookBytes = 1 << 20

type LinkedInHandler struct {
	ReconcileUC   *usecase.ReconcileLinkedInUseCase
	WebhookSecret string
	Logger        *zap.Logger
}

func NewLinkedInHandler(uc *usecase.ReconcileLinkedInUseCase, webhookSecret string, logger *zap.Logger) *LinkedInHandler {
	return &LinkedInHandler{
		ReconcileUC:   uc,
		WebhookSecret: webhookSecret,
		Logger:        logger,
	}
}

type userRequest struct {
	UserID string `json:"user_id"`
}

// Connect (POST /linkedin/connect) devolve o link hospedado do broker.
func (h *LinkedInHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.ReconcileUC.StartConnection(r.Context(), req.UserID)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("unipile")
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Sync (POST /linkedin/sync) é o caminho pull.
func (h *LinkedInHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.ReconcileUC.SyncAccounts(r.Context(), req.UserID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	if !out.BrokerAvailable {
		middleware.RecordIntegrationError("unipile")
	}
	for _, acc := range out.Accounts {
		middleware.RecordLinkedInStatusEvent("pull", string(acc.Action))
	}

	writeJSON(w, http.StatusOK, out)
}

// Accounts (GET /linkedin/accounts?user_id) lista o status atual de cada conta.
func (h *LinkedInHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	rows, err := h.ReconcileUC.CurrentStatuses(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// Webhook (POST /webhooks/linkedin) é o caminho push. Aceita JSON ou formulário.
func (h *LinkedInHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		h.Logger.Warn("🚫 webhook LinkedIn com segredo inválido", zap.String("ip", getClientIP(r)))
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "segredo do webhook inválido")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)
	payload, err := decodeWebhookPayload(r)
	if err != nil {
		middleware.RecordLinkedInStatusEvent("push", "invalid")
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidPayload, "corpo do webhook inválido")
		return
	}

	result, err := h.ReconcileUC.HandleWebhook(r.Context(), payload)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordLinkedInStatusEvent("push", "rejected")
		}
		writeUseCaseError(w, err)
		return
	}

	outcome := "stored"
	if result.Duplicate {
		outcome = "duplicate"
	}
	middleware.RecordLinkedInStatusEvent("push", outcome)

	writeJSON(w, http.StatusOK, result)
}

// authorized aceita tudo quando nenhum segredo foi configurado.
func (h *LinkedInHandler) authorized(r *http.Request) bool {
	if h.WebhookSecret == "" {
		return true
	}

	got := r.Header.Get("X-Webhook-Secret")
	if got == "" {
		got = r.URL.Query().Get("secret")
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.WebhookSecret)) == 1
}

func decodeWebhookPayload(r *http.Request) (usecase.WebhookPayload, error) {
	var payload usecase.WebhookPayload

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxWebhookBytes); err != nil && err != http.ErrNotMultipart {
			return payload, err
		}
		payload.AccountID = r.PostFormValue("account_id")
		payload.Status = r.PostFormValue("status")
		payload.Name = r.PostFormValue("name")
		if env := r.PostFormValue("AccountStatus"); env != "" {
			payload.AccountStatus = &usecase.AccountStatusEnvelope{}
			if err := json.Unmarshal([]byte(env), payload.AccountStatus); err != nil {
				return payload, err
			}
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return payload, err
		}
	}
	return payload, nil
}
