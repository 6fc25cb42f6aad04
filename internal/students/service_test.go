package students_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-attendance/internal/auth"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/students"
	"ms-attendance/internal/students/db"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateStudent(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockDBLayer) GetStudentByID(ctx context.Context, studentID string) (*models.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockDBLayer) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockDBLayer) UpdateStudent(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockDBLayer) DeleteStudent(ctx context.Context, studentID string) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

func validRequest() students.StudentRequest {
	return students.StudentRequest{
		StudentID: "S001",
		Name:      "Amara Perera",
		Email:     "amara@example.edu",
		Course:    "Computer Science",
		Year:      3,
	}
}

func TestAddStudent(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := students.NewStudentService(mockDB, nil)

	mockDB.On("CreateStudent", mock.Anything, mock.Anything).Return(nil)

	o := svc.Add(context.Background(), auth.RoleAdmin, validRequest())
	assert.Equal(t, outcome.Success, o.Kind)
	mockDB.AssertExpectations(t)
}

func TestAddStudentPermissions(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := students.NewStudentService(mockDB, nil)

	for _, role := range []auth.Role{auth.RoleVolunteer, auth.RoleGuest} {
		o := svc.Add(context.Background(), role, validRequest())
		assert.Equal(t, outcome.PermissionDenied, o.Kind)
	}
	mockDB.AssertNotCalled(t, "CreateStudent", mock.Anything, mock.Anything)
}

func TestAddStudentValidation(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := students.NewStudentService(mockDB, nil)

	cases := []struct {
		name   string
		mutate func(*students.StudentRequest)
	}{
		{"missing id", func(r *students.StudentRequest) { r.StudentID = " " }},
		{"missing name", func(r *students.StudentRequest) { r.Name = "" }},
		{"bad email", func(r *students.StudentRequest) { r.Email = "not-an-email" }},
		{"email without domain dot", func(r *students.StudentRequest) { r.Email = "a@b" }},
		{"zero year", func(r *students.StudentRequest) { r.Year = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			o := svc.Add(context.Background(), auth.RoleAdmin, req)
			assert.Equal(t, outcome.PrerequisiteViolation, o.Kind)
		})
	}
	mockDB.AssertNotCalled(t, "CreateStudent", mock.Anything, mock.Anything)
}

func TestAddStudentDuplicate(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := students.NewStudentService(mockDB, nil)

	mockDB.On("CreateStudent", mock.Anything, mock.Anything).Return(db.ErrDuplicate)

	o := svc.Add(context.Background(), auth.RoleAdmin, validRequest())
	assert.Equal(t, outcome.IntegrityConflict, o.Kind)
}

func TestUpdateStudentNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := students.NewStudentService(mockDB, nil)

	mockDB.On("UpdateStudent", mock.Anything, mock.Anything).Return(db.ErrStudentNotFound)

	o := svc.Update(context.Background(), auth.RoleAdmin, validRequest())
	assert.Equal(t, outcome.NotFound, o.Kind)
}

func TestDeleteStudent(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := students.NewStudentService(mockDB, nil)

	mockDB.On("DeleteStudent", mock.Anything, "S001").Return(nil)

	o := svc.Delete(context.Background(), auth.RoleAdmin, "S001")
	assert.Equal(t, outcome.Success, o.Kind)

	o = svc.Delete(context.Background(), auth.RoleVolunteer, "S001")
	assert.Equal(t, outcome.PermissionDenied, o.Kind)
}
