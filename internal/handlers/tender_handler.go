package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"procureBack/internal/models"
	"procureBack/internal/services"
)

type TenderHandler struct {
	Service     *services.TenderService
	Invitations *services.InvitationService
}

func (h *TenderHandler) CreateTender(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := h.Service.CreateTender(r.Context(), claims, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *TenderHandler) MyTenders(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tenders, err := h.Service.MyTenders(r.Context(), claims)
	if err != nil {
		serviceError(w, err)
		return
	}
	if tenders == nil {
		tenders = []models.Tender{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tenders)
}

func (h *TenderHandler) GetTender(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tenderID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || tenderID <= 0 {
		errorResponse(w, http.StatusBadRequest, "invalid tender id")
		return
	}

	tender, err := h.Service.GetTenderForEdit(r.Context(), claims, tenderID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tender)
}

func (h *TenderHandler) UpdateTender(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tenderID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || tenderID <= 0 {
		errorResponse(w, http.StatusBadRequest, "invalid tender id")
		return
	}

	var req models.UpdateTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.Service.UpdateTender(r.Context(), claims, tenderID, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// PublicTenderView serves the no-login seller view; the invitation token in
// the path is the only credential.
func (h *TenderHandler) PublicTenderView(w http.ResponseWriter, r *http.Request) {
	token := getParam(r, "token")
	if token == "" {
		errorResponse(w, http.StatusBadRequest, "missing invitation token")
		return
	}

	view, err := h.Invitations.PublicTenderView(r.Context(), token)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *TenderHandler) MyInvitations(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	invitations, err := h.Invitations.MyInvitations(r.Context(), claims)
	if err != nil {
		serviceError(w, err)
		return
	}
	if invitations == nil {
		invitations = []models.InvitationSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invitations)
}
