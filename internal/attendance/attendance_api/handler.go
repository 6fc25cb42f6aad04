package attendance_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-attendance/internal/attendance"
	"ms-attendance/internal/auth"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/utils"
)

type Handler struct {
	Service *attendance.AttendanceService
	Logger  *logger.Logger
}

func NewHandler(service *attendance.AttendanceService, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func eventIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
}

func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}
	studentID := chi.URLParam(r, "studentId")

	role := auth.RoleFromContext(r.Context())
	if !role.CanManageRegistrations() {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PermissionDenied, "you do not have the required permissions to perform this action"))
		return
	}

	var req struct {
		Attended string `json:"attended"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PrerequisiteViolation, "invalid request body"))
		return
	}
	h.Logger.Info("API", fmt.Sprintf("Mark: eventId=%d studentId=%s attended=%s", eventID, studentID, req.Attended))

	o := h.Service.Mark(r.Context(), eventID, studentID, req.Attended)
	utils.WriteOutcome(w, o)
}

func (h *Handler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}

	rows, err := h.Service.ListForEvent(r.Context(), eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListForEvent: eventId=%d: %v", eventID, err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}
	utils.WriteOutcomeData(w, outcome.Successf("attendance retrieved"), rows)
}
