package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type WorkflowHandler struct {
	TriggerUC *usecase.TriggerWorkflowUseCase
}

func NewWorkflowHandler(uc *usecase.TriggerWorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{TriggerUC: uc}
}

// Trigger (POST /workflows/{kind}) responde 202: a execução acontece no motor de automação.
func (h *WorkflowHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string                 `json:"user_id"`
		Params map[string]interface{} `json:"params"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	out, err := h.TriggerUC.Execute(r.Context(), usecase.TriggerWorkflowInput{
		UserID: body.UserID,
		Kind:   usecase.WorkflowKind(chi.URLParam(r, "kind")),
		Params: body.Params,
	})
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("automation")
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, out)
}
