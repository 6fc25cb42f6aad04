package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/events/db"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
)

type DBLayer interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, eventID int64) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
}

// CreateEventRequest carries the raw form values for a new event. Date and
// time arrive as strings and are validated here.
type CreateEventRequest struct {
	Name       string `json:"name"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM or HH:MM AM/PM
	Venue      string `json:"venue"`
	TotalSlots int    `json:"total_slots"`
}

type EventService struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewEventService(db DBLayer, log *logger.Logger) *EventService {
	return &EventService{DB: db, Logger: log}
}

// Create validates and stores a new event. Admin only; events are immutable
// once created.
func (s *EventService) Create(ctx context.Context, role auth.Role, req CreateEventRequest) (*models.Event, outcome.Outcome) {
	if !role.CanManageCatalog() {
		return nil, outcome.Errorf(outcome.PermissionDenied, "administrative privileges required")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Venue = strings.TrimSpace(req.Venue)
	if req.Name == "" || req.Date == "" || req.Time == "" || req.Venue == "" {
		return nil, outcome.Errorf(outcome.PrerequisiteViolation, "all fields are required")
	}
	if req.TotalSlots <= 0 {
		return nil, outcome.Errorf(outcome.PrerequisiteViolation, "total slots must be a positive number")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, outcome.Errorf(outcome.PrerequisiteViolation, "invalid date format, please use YYYY-MM-DD")
	}

	eventTime, err := parseEventTime(req.Time)
	if err != nil {
		return nil, outcome.Errorf(outcome.PrerequisiteViolation, "invalid time format, please use HH:MM AM/PM or HH:MM")
	}

	event := &models.Event{
		Name:       req.Name,
		Date:       date,
		Time:       eventTime,
		Venue:      req.Venue,
		TotalSlots: req.TotalSlots,
		CreatedAt:  time.Now(),
	}
	if err := s.DB.CreateEvent(ctx, event); err != nil {
		if s.Logger != nil {
			s.Logger.Error("EVENTS", fmt.Sprintf("create event %q: %v", req.Name, err))
		}
		return nil, outcome.Unexpectedf(err)
	}

	if s.Logger != nil {
		s.Logger.Info("EVENTS", fmt.Sprintf("created event %q (id=%d)", event.Name, event.ID))
	}
	return event, outcome.Successf("event created successfully")
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, eventID int64) (*models.Event, outcome.Outcome) {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, db.ErrEventNotFound) {
			return nil, outcome.Errorf(outcome.NotFound, "event not found")
		}
		if s.Logger != nil {
			s.Logger.Error("EVENTS", fmt.Sprintf("get event %d: %v", eventID, err))
		}
		return nil, outcome.Unexpectedf(err)
	}
	return event, outcome.Successf("event found")
}

// GetAll lists every event, most recent first.
func (s *EventService) GetAll(ctx context.Context) ([]models.Event, error) {
	return s.DB.GetAllEvents(ctx)
}

// parseEventTime accepts 12-hour ("7:30 PM") or 24-hour ("19:30") input and
// normalises to the 12-hour display form stored with the event.
func parseEventTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("3:04 PM", strings.ToUpper(value)); err == nil {
		return t.Format("03:04 PM"), nil
	}
	if t, err := time.Parse("15:04", value); err == nil {
		return t.Format("03:04 PM"), nil
	}
	return "", fmt.Errorf("unrecognised time %q", value)
}
