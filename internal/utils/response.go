package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"ms-attendance/internal/outcome"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func ErrorResponse(message, error string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Error:     error,
		Timestamp: time.Now(),
	}
}

// StatusForOutcome maps an outcome kind to its HTTP status code.
func StatusForOutcome(o outcome.Outcome) int {
	switch o.Kind {
	case outcome.Success, outcome.Info:
		return http.StatusOK
	case outcome.PermissionDenied:
		return http.StatusForbidden
	case outcome.NotFound:
		return http.StatusNotFound
	case outcome.CapacityExceeded, outcome.IntegrityConflict:
		return http.StatusConflict
	case outcome.TemporalConstraintViolation, outcome.PrerequisiteViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteOutcome renders a service outcome as a JSON API response.
func WriteOutcome(w http.ResponseWriter, o outcome.Outcome) {
	WriteOutcomeData(w, o, nil)
}

// WriteOutcomeData renders a service outcome with an optional payload.
func WriteOutcomeData(w http.ResponseWriter, o outcome.Outcome, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusForOutcome(o))

	var resp APIResponse
	if o.OK() {
		resp = SuccessResponse(o.Detail, data)
	} else {
		resp = ErrorResponse(o.Detail, o.Kind.String())
	}
	_ = json.NewEncoder(w).Encode(resp)
}
