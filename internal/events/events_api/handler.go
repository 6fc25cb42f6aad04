package events_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/events"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/utils"
)

type Handler struct {
	Service *events.EventService
	Logger  *logger.Logger
}

func NewHandler(service *events.EventService, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req events.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PrerequisiteViolation, "invalid request body"))
		return
	}

	role := auth.RoleFromContext(r.Context())
	h.Logger.Info("API", fmt.Sprintf("CreateEvent: name=%q role=%s", req.Name, role))

	event, o := h.Service.Create(r.Context(), role, req)
	if !o.OK() {
		utils.WriteOutcome(w, o)
		return
	}
	utils.WriteOutcomeData(w, o, event)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}

	event, o := h.Service.Get(r.Context(), eventID)
	if !o.OK() {
		utils.WriteOutcome(w, o)
		return
	}
	utils.WriteOutcomeData(w, o, event)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetAllEvents: %v", err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}
	utils.WriteOutcomeData(w, outcome.Successf("events retrieved"), list)
}
