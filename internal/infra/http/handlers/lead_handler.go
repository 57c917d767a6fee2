package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type LeadHandler struct {
	LeadsUC *usecase.ManageLeadsUseCase
}

func NewLeadHandler(uc *usecase.ManageLeadsUseCase) *LeadHandler {
	return &LeadHandler{LeadsUC: uc}
}

// List (GET /leads?user_id&status&campaign&q&limit&offset)
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	leads, err := h.LeadsUC.List(r.Context(), entity.LeadFilter{
		UserID:   userID,
		Status:   entity.LeadStatus(q.Get("status")),
		Campaign: q.Get("campaign"),
		Search:   q.Get("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	lead, err := h.LeadsUC.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var patch entity.LeadPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	lead, err := h.LeadsUC.Update(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.LeadsUC.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
