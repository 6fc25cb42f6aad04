package students

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/students/db"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type DBLayer interface {
	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByID(ctx context.Context, studentID string) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, studentID string) error
}

// StudentRequest carries the form values for adding or updating a student.
type StudentRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Course    string `json:"course"`
	Year      int    `json:"year"`
}

type StudentService struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewStudentService(db DBLayer, log *logger.Logger) *StudentService {
	return &StudentService{DB: db, Logger: log}
}

func (s *StudentService) validate(req *StudentRequest) outcome.Outcome {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.StudentID == "" || req.Name == "" || req.Email == "" {
		return outcome.Errorf(outcome.PrerequisiteViolation, "student id, name and email are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return outcome.Errorf(outcome.PrerequisiteViolation, "invalid email format")
	}
	if req.Year <= 0 {
		return outcome.Errorf(outcome.PrerequisiteViolation, "year must be a positive number")
	}
	return outcome.Successf("valid")
}

// Add creates a student record. Admin only. Duplicate ids or emails are
// reported as IntegrityConflict, not Unexpected: the unique constraint is
// the authority under concurrent adds.
func (s *StudentService) Add(ctx context.Context, role auth.Role, req StudentRequest) outcome.Outcome {
	if !role.CanManageCatalog() {
		return outcome.Errorf(outcome.PermissionDenied, "administrative privileges required")
	}
	if o := s.validate(&req); !o.OK() {
		return o
	}

	student := &models.Student{
		ID:        req.StudentID,
		Name:      req.Name,
		Email:     req.Email,
		Course:    req.Course,
		Year:      req.Year,
		CreatedAt: time.Now(),
	}
	err := s.DB.CreateStudent(ctx, student)
	switch {
	case err == nil:
	case errors.Is(err, db.ErrDuplicate):
		return outcome.Errorf(outcome.IntegrityConflict, "a student with id %q or email %q already exists", req.StudentID, req.Email)
	default:
		if s.Logger != nil {
			s.Logger.Error("STUDENTS", fmt.Sprintf("add student %s: %v", req.StudentID, err))
		}
		return outcome.Unexpectedf(err)
	}
	return outcome.Successf("student added successfully")
}

// Update rewrites a student's details. Admin only.
func (s *StudentService) Update(ctx context.Context, role auth.Role, req StudentRequest) outcome.Outcome {
	if !role.CanManageCatalog() {
		return outcome.Errorf(outcome.PermissionDenied, "administrative privileges required")
	}
	if o := s.validate(&req); !o.OK() {
		return o
	}

	student := &models.Student{
		ID:     req.StudentID,
		Name:   req.Name,
		Email:  req.Email,
		Course: req.Course,
		Year:   req.Year,
	}
	err := s.DB.UpdateStudent(ctx, student)
	switch {
	case err == nil:
	case errors.Is(err, db.ErrStudentNotFound):
		return outcome.Errorf(outcome.NotFound, "student not found")
	case errors.Is(err, db.ErrDuplicate):
		return outcome.Errorf(outcome.IntegrityConflict, "a student with email %q already exists", req.Email)
	default:
		if s.Logger != nil {
			s.Logger.Error("STUDENTS", fmt.Sprintf("update student %s: %v", req.StudentID, err))
		}
		return outcome.Unexpectedf(err)
	}
	return outcome.Successf("student updated successfully")
}

// Delete removes a student record. Admin only.
func (s *StudentService) Delete(ctx context.Context, role auth.Role, studentID string) outcome.Outcome {
	if !role.CanManageCatalog() {
		return outcome.Errorf(outcome.PermissionDenied, "administrative privileges required")
	}

	err := s.DB.DeleteStudent(ctx, studentID)
	switch {
	case err == nil:
	case errors.Is(err, db.ErrStudentNotFound):
		return outcome.Errorf(outcome.NotFound, "student not found")
	default:
		if s.Logger != nil {
			s.Logger.Error("STUDENTS", fmt.Sprintf("delete student %s: %v", studentID, err))
		}
		return outcome.Unexpectedf(err)
	}
	return outcome.Successf("student deleted successfully")
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, studentID string) (*models.Student, outcome.Outcome) {
	student, err := s.DB.GetStudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, db.ErrStudentNotFound) {
			return nil, outcome.Errorf(outcome.NotFound, "student not found")
		}
		if s.Logger != nil {
			s.Logger.Error("STUDENTS", fmt.Sprintf("get student %s: %v", studentID, err))
		}
		return nil, outcome.Unexpectedf(err)
	}
	return student, outcome.Successf("student found")
}

// GetAll lists every student ordered by name.
func (s *StudentService) GetAll(ctx context.Context) ([]models.Student, error) {
	return s.DB.GetAllStudents(ctx)
}
