package reports_api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-attendance/internal/logger"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/reports"
	"ms-attendance/internal/utils"
)

type Handler struct {
	Service *reports.ReportService
	Logger  *logger.Logger
}

func NewHandler(service *reports.ReportService, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func eventIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}

	stats, o := h.Service.Statistics(r.Context(), eventID)
	if !o.OK() {
		utils.WriteOutcome(w, o)
		return
	}
	utils.WriteOutcomeData(w, o, stats)
}

// ExportAttendance streams the attendance sheet as a CSV download.
func (h *Handler) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.NotFound, "invalid event id"))
		return
	}
	h.Logger.Info("API", fmt.Sprintf("ExportAttendance: eventId=%d", eventID))

	// Buffered so a failure never ships a partial CSV.
	var buf bytes.Buffer
	if o := h.Service.ExportAttendance(r.Context(), eventID, &buf); !o.OK() {
		h.Logger.Error("API", fmt.Sprintf("ExportAttendance: eventId=%d: %s", eventID, o.Detail))
		utils.WriteOutcome(w, o)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"attendance_event_%d.csv\"", eventID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
