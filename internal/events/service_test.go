package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/events"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateEvent(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockDBLayer) GetEventByID(ctx context.Context, eventID int64) (*models.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockDBLayer) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func validRequest() events.CreateEventRequest {
	return events.CreateEventRequest{
		Name:       "Tech Meetup",
		Date:       "2026-09-15",
		Time:       "7:30 PM",
		Venue:      "Hall A",
		TotalSlots: 50,
	}
}

func TestCreateEvent(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := events.NewEventService(mockDB, nil)

	mockDB.On("CreateEvent", mock.Anything, mock.Anything).Return(nil)

	event, o := svc.Create(context.Background(), auth.RoleAdmin, validRequest())
	assert.Equal(t, outcome.Success, o.Kind)
	assert.Equal(t, "Tech Meetup", event.Name)
	assert.Equal(t, "07:30 PM", event.Time)
	assert.Equal(t, 50, event.TotalSlots)
}

func TestCreateEventPermissions(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := events.NewEventService(mockDB, nil)

	// Only admins create events; volunteers manage registrations.
	for _, role := range []auth.Role{auth.RoleVolunteer, auth.RoleGuest} {
		_, o := svc.Create(context.Background(), role, validRequest())
		assert.Equal(t, outcome.PermissionDenied, o.Kind)
	}
	mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateEventValidation(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := events.NewEventService(mockDB, nil)

	cases := []struct {
		name   string
		mutate func(*events.CreateEventRequest)
	}{
		{"missing name", func(r *events.CreateEventRequest) { r.Name = " " }},
		{"missing venue", func(r *events.CreateEventRequest) { r.Venue = "" }},
		{"zero slots", func(r *events.CreateEventRequest) { r.TotalSlots = 0 }},
		{"negative slots", func(r *events.CreateEventRequest) { r.TotalSlots = -5 }},
		{"bad date", func(r *events.CreateEventRequest) { r.Date = "15/09/2026" }},
		{"bad time", func(r *events.CreateEventRequest) { r.Time = "half past seven" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, o := svc.Create(context.Background(), auth.RoleAdmin, req)
			assert.Equal(t, outcome.PrerequisiteViolation, o.Kind)
		})
	}
	mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateEventAccepts24HourTime(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := events.NewEventService(mockDB, nil)
	mockDB.On("CreateEvent", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Time = "19:30"
	event, o := svc.Create(context.Background(), auth.RoleAdmin, req)
	assert.Equal(t, outcome.Success, o.Kind)
	assert.Equal(t, "07:30 PM", event.Time)
}
