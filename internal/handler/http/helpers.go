package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		details[fieldError.Field()] = fmt.Sprintf("failed on the %q rule", fieldError.Tag())
	}
	return details
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, catalog.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateCode),
		errors.Is(err, catalog.ErrAlreadyRegistered),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, order.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, catalog.ErrInvalidNumber),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, order.ErrInvalidWeight):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage picks a safe message for known domain failures and
// falls back for everything else.
func clientMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return "Order not found"
	case errors.Is(err, catalog.ErrServiceNotFound):
		return "Service not found"
	case errors.Is(err, catalog.ErrCustomerNotFound):
		return "Customer not found"
	case errors.Is(err, catalog.ErrDuplicateCode):
		return "Service code already exists"
	case errors.Is(err, order.ErrIllegalTransition):
		return "Illegal status transition"
	case errors.Is(err, order.ErrAlreadyPaid):
		return "Order already paid"
	case errors.Is(err, order.ErrPaymentDeclined):
		return "Partial payment requires confirmation"
	case errors.Is(err, order.ErrInvalidWeight):
		return "Weight must be greater than zero"
	case errors.Is(err, catalog.ErrInvalidNumber):
		return "Invalid numeric value"
	case errors.Is(err, catalog.ErrEmptyName):
		return "Name must not be empty"
	default:
		return fallback
	}
}
