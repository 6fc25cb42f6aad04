package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-attendance/internal/attendance"
	"ms-attendance/internal/attendance/db"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) MarkAttendance(ctx context.Context, eventID int64, studentID, status string, today time.Time) error {
	args := m.Called(ctx, eventID, studentID, status, today)
	return args.Error(0)
}

func (m *MockDBLayer) EventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRow, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRow), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAttendanceMarked(eventID int64, studentID, attended string) error {
	args := m.Called(eventID, studentID, attended)
	return args.Error(0)
}

func TestMarkSuccess(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockKafka := new(MockPublisher)
	svc := attendance.NewAttendanceService(mockDB, mockKafka, nil)

	mockDB.On("MarkAttendance", mock.Anything, int64(1), "S001", models.AttendanceYes, mock.Anything).Return(nil)
	mockKafka.On("PublishAttendanceMarked", int64(1), "S001", models.AttendanceYes).Return(nil)

	o := svc.Mark(context.Background(), 1, "S001", models.AttendanceYes)
	assert.Equal(t, outcome.Success, o.Kind)
	mockDB.AssertExpectations(t)
}

func TestMarkRejectsBadStatus(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := attendance.NewAttendanceService(mockDB, nil, nil)

	for _, status := range []string{"", "yes", "y", "MAYBE"} {
		o := svc.Mark(context.Background(), 1, "S001", status)
		assert.Equal(t, outcome.PrerequisiteViolation, o.Kind)
	}
	mockDB.AssertNotCalled(t, "MarkAttendance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkFutureEventCarriesDate(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := attendance.NewAttendanceService(mockDB, nil, nil)

	eventDate := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	mockDB.On("MarkAttendance", mock.Anything, int64(1), "S001", models.AttendanceNo, mock.Anything).
		Return(&db.FutureEventError{EventDate: eventDate})

	o := svc.Mark(context.Background(), 1, "S001", models.AttendanceNo)
	assert.Equal(t, outcome.TemporalConstraintViolation, o.Kind)
	assert.Contains(t, o.Detail, "2026-12-24")
}

func TestMarkNotRegistered(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := attendance.NewAttendanceService(mockDB, nil, nil)

	mockDB.On("MarkAttendance", mock.Anything, int64(1), "S001", models.AttendanceYes, mock.Anything).
		Return(db.ErrNotRegistered)

	o := svc.Mark(context.Background(), 1, "S001", models.AttendanceYes)
	assert.Equal(t, outcome.PrerequisiteViolation, o.Kind)
}

func TestMarkEventNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := attendance.NewAttendanceService(mockDB, nil, nil)

	mockDB.On("MarkAttendance", mock.Anything, int64(7), "S001", models.AttendanceYes, mock.Anything).
		Return(db.ErrEventNotFound)

	o := svc.Mark(context.Background(), 7, "S001", models.AttendanceYes)
	assert.Equal(t, outcome.NotFound, o.Kind)
}
