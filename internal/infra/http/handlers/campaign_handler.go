package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type CampaignHandler struct {
	LeadsUC *usecase.ManageLeadsUseCase
	EmailUC *usecase.SendCampaignEmailUseCase
}

func NewCampaignHandler(leads *usecase.ManageLeadsUseCase, email *usecase.SendCampaignEmailUseCase) *CampaignHandler {
	return &CampaignHandler{LeadsUC: leads, EmailUC: email}
}

// Stats (GET /campaigns/stats?user_id)
func (h *CampaignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.LeadsUC.CampaignStats(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// SendEmail (POST /campaigns/email) sempre responde 200 com o relatório por lead.
func (h *CampaignHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendCampaignEmailInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.EmailUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
