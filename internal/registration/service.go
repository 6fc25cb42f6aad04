package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/registration/db"
)

type DBLayer interface {
	CreateRegistration(ctx context.Context, eventID int64, studentID string, registeredAt time.Time) error
	CancelRegistration(ctx context.Context, eventID int64, studentID string) (int64, error)
	RegisteredStudents(ctx context.Context, eventID int64) ([]models.RegisteredStudent, error)
	IsRegistered(ctx context.Context, eventID int64, studentID string) (bool, error)
}

type KafkaPublisher interface {
	PublishRegistrationCreated(eventID int64, studentID string) error
	PublishRegistrationCancelled(eventID int64, studentID string) error
}

type RegistrationService struct {
	DB     DBLayer
	Kafka  KafkaPublisher
	Logger *logger.Logger
}

func NewRegistrationService(db DBLayer, kafka KafkaPublisher, log *logger.Logger) *RegistrationService {
	return &RegistrationService{DB: db, Kafka: kafka, Logger: log}
}

// Register claims one of the event's capacity slots for the student. All
// checks run inside a single transaction in the db layer; this level handles
// permissions, outcome mapping and event streaming.
func (s *RegistrationService) Register(ctx context.Context, role auth.Role, eventID int64, studentID string) outcome.Outcome {
	if !role.CanManageRegistrations() {
		return outcome.Errorf(outcome.PermissionDenied, "you do not have the required permissions to perform this action")
	}

	err := s.DB.CreateRegistration(ctx, eventID, studentID, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, db.ErrEventNotFound):
		return outcome.Errorf(outcome.NotFound, "event not found")
	case errors.Is(err, db.ErrStudentNotFound):
		return outcome.Errorf(outcome.NotFound, "student not found")
	case errors.Is(err, db.ErrAlreadyRegistered):
		return outcome.Infof("student is already registered for this event")
	case errors.Is(err, db.ErrCapacityExceeded):
		return outcome.Errorf(outcome.CapacityExceeded, "event is full, cannot register")
	default:
		if s.Logger != nil {
			s.Logger.Error("REGISTRATION", fmt.Sprintf("register event=%d student=%s: %v", eventID, studentID, err))
		}
		return outcome.Unexpectedf(err)
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishRegistrationCreated(eventID, studentID); err != nil && s.Logger != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("publish registration created: %v", err))
		}
	}
	if s.Logger != nil {
		s.Logger.LogRegistration("REGISTER", eventID, studentID, "slot claimed")
	}
	return outcome.Successf("student registered successfully")
}

// Cancel releases the student's slot and removes any attendance record.
// Cancelling a registration that does not exist still succeeds: the end
// state is the same either way.
func (s *RegistrationService) Cancel(ctx context.Context, role auth.Role, eventID int64, studentID string) outcome.Outcome {
	if !role.CanManageRegistrations() {
		return outcome.Errorf(outcome.PermissionDenied, "you do not have the required permissions to perform this action")
	}

	removed, err := s.DB.CancelRegistration(ctx, eventID, studentID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("REGISTRATION", fmt.Sprintf("cancel event=%d student=%s: %v", eventID, studentID, err))
		}
		return outcome.Unexpectedf(err)
	}

	if removed > 0 {
		if s.Kafka != nil {
			if err := s.Kafka.PublishRegistrationCancelled(eventID, studentID); err != nil && s.Logger != nil {
				s.Logger.Warn("KAFKA", fmt.Sprintf("publish registration cancelled: %v", err))
			}
		}
		if s.Logger != nil {
			s.Logger.LogRegistration("CANCEL", eventID, studentID, "slot released")
		}
	} else if s.Logger != nil {
		s.Logger.LogRegistration("CANCEL", eventID, studentID, "no registration existed")
	}
	return outcome.Successf("registration cancelled successfully")
}

// ListRegistered returns the roster for an event, ordered by student name.
// Reads are unrestricted.
func (s *RegistrationService) ListRegistered(ctx context.Context, eventID int64) ([]models.RegisteredStudent, error) {
	return s.DB.RegisteredStudents(ctx, eventID)
}

// IsRegistered reports whether a student holds a slot for the event.
func (s *RegistrationService) IsRegistered(ctx context.Context, eventID int64, studentID string) (bool, error) {
	return s.DB.IsRegistered(ctx, eventID, studentID)
}
