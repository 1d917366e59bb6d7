// Package shared centralizes domain error translation to HTTP responses so
// every handler emits the same error envelopes.
package shared

import (
	"errors"
	"net/http"

	"propertyhub/internal/transport/http/json"
	"propertyhub/internal/validate"
	dErrors "propertyhub/pkg/domain-errors"
)

// WriteError translates transport-agnostic domain errors into HTTP status
// codes and JSON error responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		json.WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), response)
		return
	}

	// Fallback for unexpected errors
	json.WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// WriteValidationErrors renders a schema rejection as 422 with the full
// ordered violation list, so clients can attach messages to form fields.
func WriteValidationErrors(w http.ResponseWriter, fieldErrors []validate.FieldError) {
	json.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":   string(dErrors.CodeValidation),
		"details": fieldErrors,
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeConflict, dErrors.CodeAlreadyRefunded:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeGatewayRejected:
		return http.StatusBadGateway
	case dErrors.CodeNotRefundable:
		return http.StatusUnprocessableEntity
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
