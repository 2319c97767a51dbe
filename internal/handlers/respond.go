package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"procureBack/internal/models"
)

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Status: "error", Message: message})
}

// serviceError maps service-layer errors onto HTTP statuses. The service and
// repository layers bubble errors unmodified; this is the only place
// user-facing statuses are assigned.
func serviceError(w http.ResponseWriter, err error) {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		errorResponse(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, models.ErrNoRecord):
		errorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrForbidden):
		errorResponse(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, models.ErrInvalidCredentials):
		errorResponse(w, http.StatusForbidden, "invalid credentials")
	case errors.Is(err, models.ErrDuplicateEmail):
		errorResponse(w, http.StatusBadRequest, "email is already in use")
	default:
		errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
