package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type SettingsHandler struct {
	SettingsUC *usecase.ManageSettingsUseCase
}

func NewSettingsHandler(uc *usecase.ManageSettingsUseCase) *SettingsHandler {
	return &SettingsHandler{SettingsUC: uc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.SettingsUC.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// Put (PUT /settings/{userId}) usa o userId da rota, não o do corpo.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var input entity.Settings
	if !decodeJSON(w, r, &input) {
		return
	}
	input.UserID = chi.URLParam(r, "userId")

	s, err := h.SettingsUC.Save(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}
