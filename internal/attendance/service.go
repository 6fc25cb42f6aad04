package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ms-attendance/internal/attendance/db"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
)

type DBLayer interface {
	MarkAttendance(ctx context.Context, eventID int64, studentID, status string, today time.Time) error
	EventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRow, error)
}

type KafkaPublisher interface {
	PublishAttendanceMarked(eventID int64, studentID, attended string) error
}

type AttendanceService struct {
	DB     DBLayer
	Kafka  KafkaPublisher
	Logger *logger.Logger
}

func NewAttendanceService(db DBLayer, kafka KafkaPublisher, log *logger.Logger) *AttendanceService {
	return &AttendanceService{DB: db, Kafka: kafka, Logger: log}
}

// Mark upserts the student's attendance for the event. Marking twice leaves
// exactly one record carrying the latest status.
func (s *AttendanceService) Mark(ctx context.Context, eventID int64, studentID, status string) outcome.Outcome {
	if status != models.AttendanceYes && status != models.AttendanceNo {
		return outcome.Errorf(outcome.PrerequisiteViolation, "attendance status must be %q or %q", models.AttendanceYes, models.AttendanceNo)
	}

	err := s.DB.MarkAttendance(ctx, eventID, studentID, status, time.Now())
	var futureErr *db.FutureEventError
	switch {
	case err == nil:
	case errors.Is(err, db.ErrEventNotFound):
		return outcome.Errorf(outcome.NotFound, "event not found")
	case errors.As(err, &futureErr):
		return outcome.Errorf(outcome.TemporalConstraintViolation,
			"attendance can only be marked on or after the event date (%s)",
			futureErr.EventDate.Format("2006-01-02"))
	case errors.Is(err, db.ErrNotRegistered):
		return outcome.Errorf(outcome.PrerequisiteViolation, "cannot mark attendance for a student who is not registered for this event")
	default:
		if s.Logger != nil {
			s.Logger.Error("ATTENDANCE", fmt.Sprintf("mark event=%d student=%s: %v", eventID, studentID, err))
		}
		return outcome.Unexpectedf(err)
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishAttendanceMarked(eventID, studentID, status); err != nil && s.Logger != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("publish attendance marked: %v", err))
		}
	}
	if s.Logger != nil {
		s.Logger.LogAttendance("MARK", eventID, studentID, "status "+status)
	}
	return outcome.Successf("attendance record saved successfully")
}

// ListForEvent returns the attendance sheet, not-yet-marked students
// reported as "N".
func (s *AttendanceService) ListForEvent(ctx context.Context, eventID int64) ([]models.AttendanceRow, error) {
	return s.DB.EventAttendance(ctx, eventID)
}
