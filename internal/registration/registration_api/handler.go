package registration_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/checkinpass"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/notifier"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/registration"
	"ms-attendance/internal/utils"
)

type Handler struct {
	Service    *registration.RegistrationService
	Dispatcher *notifier.Dispatcher
	Passes     *checkinpass.Generator
	Logger     *logger.Logger
}

func NewHandler(service *registration.RegistrationService, dispatcher *notifier.Dispatcher, passes *checkinpass.Generator, log *logger.Logger) *Handler {
	return &Handler{
		Service:    service,
		Dispatcher: dispatcher,
		Passes:     passes,
		Logger:     log,
	}
}

func eventIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}
	studentID := chi.URLParam(r, "studentId")
	role := auth.RoleFromContext(r.Context())
	h.Logger.Info("API", fmt.Sprintf("Register: eventId=%d studentId=%s role=%s", eventID, studentID, role))

	o := h.Service.Register(r.Context(), role, eventID, studentID)
	utils.WriteOutcome(w, o)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}
	studentID := chi.URLParam(r, "studentId")
	role := auth.RoleFromContext(r.Context())
	h.Logger.Info("API", fmt.Sprintf("Cancel: eventId=%d studentId=%s role=%s", eventID, studentID, role))

	o := h.Service.Cancel(r.Context(), role, eventID, studentID)
	utils.WriteOutcome(w, o)
}

func (h *Handler) ListRegistered(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}

	students, err := h.Service.ListRegistered(r.Context(), eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListRegistered: eventId=%d: %v", eventID, err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}
	utils.WriteOutcomeData(w, outcome.Successf("registered students retrieved"), students)
}

// Notify emails every registered student. The batch runs in the background;
// the response only confirms the dispatch was accepted.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}

	role := auth.RoleFromContext(r.Context())
	if !role.CanManageRegistrations() {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PermissionDenied, "you do not have the required permissions to perform this action"))
		return
	}

	var req struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PrerequisiteViolation, "invalid request body"))
		return
	}
	if req.Subject == "" || req.Body == "" {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PrerequisiteViolation, "subject and body are required"))
		return
	}

	students, err := h.Service.ListRegistered(r.Context(), eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Notify: eventId=%d: %v", eventID, err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}
	if len(students) == 0 {
		utils.WriteOutcome(w, outcome.Infof("no registered students to notify"))
		return
	}

	recipients := make([]string, 0, len(students))
	for _, s := range students {
		recipients = append(recipients, s.Email)
	}
	batchID := h.Dispatcher.SendBatch(recipients, req.Subject, req.Body, nil)
	h.Logger.Info("API", fmt.Sprintf("Notify: eventId=%d batch=%s queued %d emails", eventID, batchID, len(recipients)))

	utils.WriteOutcomeData(w, outcome.Successf("notification dispatch started"),
		map[string]interface{}{"batch_id": batchID, "recipients": len(recipients)})
}

// CheckinPass returns a PNG QR code a volunteer can scan at the venue.
func (h *Handler) CheckinPass(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}
	studentID := chi.URLParam(r, "studentId")

	registered, err := h.Service.IsRegistered(r.Context(), eventID, studentID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CheckinPass: eventId=%d studentId=%s: %v", eventID, studentID, err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}
	if !registered {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "student is not registered for this event"))
		return
	}

	png, err := h.Passes.GenerateEncryptedQR(checkinpass.NewPass(eventID, studentID))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CheckinPass: eventId=%d studentId=%s: %v", eventID, studentID, err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
