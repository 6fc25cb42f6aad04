package students_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/students"
	"ms-attendance/internal/utils"
)

type Handler struct {
	Service *students.StudentService
	Logger  *logger.Logger
}

func NewHandler(service *students.StudentService, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req students.StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PrerequisiteViolation, "invalid request body"))
		return
	}

	role := auth.RoleFromContext(r.Context())
	h.Logger.Info("API", fmt.Sprintf("AddStudent: id=%s role=%s", req.StudentID, role))

	o := h.Service.Add(r.Context(), role, req)
	utils.WriteOutcome(w, o)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req students.StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteOutcome(w, outcome.Errorf(outcome.PrerequisiteViolation, "invalid request body"))
		return
	}
	req.StudentID = chi.URLParam(r, "studentId")

	role := auth.RoleFromContext(r.Context())
	h.Logger.Info("API", fmt.Sprintf("UpdateStudent: id=%s role=%s", req.StudentID, role))

	o := h.Service.Update(r.Context(), role, req)
	utils.WriteOutcome(w, o)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	role := auth.RoleFromContext(r.Context())
	h.Logger.Info("API", fmt.Sprintf("DeleteStudent: id=%s role=%s", studentID, role))

	o := h.Service.Delete(r.Context(), role, studentID)
	utils.WriteOutcome(w, o)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")

	student, o := h.Service.Get(r.Context(), studentID)
	if !o.OK() {
		utils.WriteOutcome(w, o)
		return
	}
	utils.WriteOutcomeData(w, o, student)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetAllStudents: %v", err))
		utils.WriteOutcome(w, outcome.Unexpectedf(err))
		return
	}
	utils.WriteOutcomeData(w, outcome.Successf("students retrieved"), list)
}
