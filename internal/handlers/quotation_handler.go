package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"procureBack/internal/models"
	"procureBack/internal/services"
)

const maxDocumentSize = 5 << 20 // 5MB

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

type QuotationHandler struct {
	Service    *services.QuotationService
	Comparison *services.ComparisonService
	Selection  *services.SelectionService
}

func (h *QuotationHandler) SubmitQuotation(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SubmitQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	quotation, err := h.Service.Submit(r.Context(), claims, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quotation)
}

func (h *QuotationHandler) MyQuotation(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	token := getParam(r, "token")
	tenderID := 0
	if raw := getParam(r, "tenderId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			errorResponse(w, http.StatusBadRequest, "invalid tender id")
			return
		}
		tenderID = id
	}
	if token == "" && tenderID == 0 {
		errorResponse(w, http.StatusBadRequest, "missing invitation token")
		return
	}

	view, err := h.Service.MyQuotation(r.Context(), claims, token, tenderID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *QuotationHandler) GetSubmitted(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	quotations, err := h.Service.SubmittedQuotations(r.Context(), claims)
	if err != nil {
		serviceError(w, err)
		return
	}
	if quotations == nil {
		quotations = []models.SubmittedQuotationSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotations)
}

// TenderComparison returns the top suppliers per tender item, ranked by
// final price; only the owning buyer account can read it.
func (h *QuotationHandler) TenderComparison(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tenderID, err := strconv.Atoi(getParam(r, "tenderId"))
	if err != nil || tenderID <= 0 {
		errorResponse(w, http.StatusBadRequest, "invalid tender id")
		return
	}

	comparison, err := h.Comparison.Compare(r.Context(), claims, tenderID, services.DefaultComparisonTopN)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comparison)
}

func (h *QuotationHandler) SelectSupplier(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SelectSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	selection, err := h.Selection.SelectSupplier(r.Context(), claims, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(selection)
}

func (h *QuotationHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	quotationID, err := strconv.Atoi(getParam(r, "quotationId"))
	if err != nil || quotationID <= 0 {
		errorResponse(w, http.StatusBadRequest, "invalid quotation id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		errorResponse(w, http.StatusBadRequest, "file exceeds the 5MB limit")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "missing document file")
		return
	}
	defer file.Close()

	if !allowedDocumentExt(header.Filename) {
		errorResponse(w, http.StatusBadRequest, "only pdf, jpg, png, doc and docx files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	storedPath, err := h.Service.AttachDocument(r.Context(), claims, quotationID, header.Filename, data)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"document_path": storedPath})
}

func allowedDocumentExt(fileName string) bool {
	return allowedDocumentExtensions[strings.ToLower(path.Ext(fileName))]
}
