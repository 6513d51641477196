package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, errLabel, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: errLabel, Message: message})
}

// writeDomainError maps a use-case error to an HTTP status. Unknown errors
// are deliberately opaque.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrDebtNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, domain.ErrOverpayment):
		writeError(w, http.StatusUnprocessableEntity, "business_rule", err.Error())

	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidFrequency),
		errors.Is(err, domain.ErrCategoryRequired),
		errors.Is(err, domain.ErrDestinationRequired),
		errors.Is(err, domain.ErrSameAccountTransfer),
		errors.Is(err, domain.ErrExchangeRateRequired),
		errors.Is(err, domain.ErrCreditFieldsRequired),
		errors.Is(err, domain.ErrSavingsTargetsRequired):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
