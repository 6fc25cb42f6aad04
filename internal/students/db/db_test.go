package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-attendance/internal/models"
	"ms-attendance/internal/students/db"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.Student)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create student table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func sampleStudent() *models.Student {
	return &models.Student{
		ID:        "S001",
		Name:      "Amara Perera",
		Email:     "amara@example.edu",
		Course:    "Computer Science",
		Year:      3,
		CreatedAt: time.Now(),
	}
}

func TestCreateAndGetStudent(t *testing.T) {
	studentDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	require.NoError(t, studentDB.CreateStudent(ctx, sampleStudent()))

	student, err := studentDB.GetStudentByID(ctx, "S001")
	assert.NoError(t, err)
	assert.Equal(t, "Amara Perera", student.Name)

	_, err = studentDB.GetStudentByID(ctx, "MISSING")
	assert.ErrorIs(t, err, db.ErrStudentNotFound)
}

func TestCreateStudentDuplicate(t *testing.T) {
	studentDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	require.NoError(t, studentDB.CreateStudent(ctx, sampleStudent()))

	// Same primary key.
	err := studentDB.CreateStudent(ctx, sampleStudent())
	assert.ErrorIs(t, err, db.ErrDuplicate)

	// Different id, same email.
	dup := sampleStudent()
	dup.ID = "S002"
	err = studentDB.CreateStudent(ctx, dup)
	assert.ErrorIs(t, err, db.ErrDuplicate)
}

func TestUpdateStudent(t *testing.T) {
	studentDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	require.NoError(t, studentDB.CreateStudent(ctx, sampleStudent()))

	updated := sampleStudent()
	updated.Course = "Data Science"
	updated.Year = 4
	assert.NoError(t, studentDB.UpdateStudent(ctx, updated))

	student, err := studentDB.GetStudentByID(ctx, "S001")
	require.NoError(t, err)
	assert.Equal(t, "Data Science", student.Course)
	assert.Equal(t, 4, student.Year)

	missing := sampleStudent()
	missing.ID = "MISSING"
	missing.Email = "other@example.edu"
	assert.ErrorIs(t, studentDB.UpdateStudent(ctx, missing), db.ErrStudentNotFound)
}

func TestDeleteStudent(t *testing.T) {
	studentDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	require.NoError(t, studentDB.CreateStudent(ctx, sampleStudent()))
	assert.NoError(t, studentDB.DeleteStudent(ctx, "S001"))
	assert.ErrorIs(t, studentDB.DeleteStudent(ctx, "S001"), db.ErrStudentNotFound)
}

func TestGetAllStudentsOrdering(t *testing.T) {
	studentDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	second := sampleStudent()
	second.ID = "S002"
	second.Name = "Kasun Silva"
	second.Email = "kasun@example.edu"
	require.NoError(t, studentDB.CreateStudent(ctx, second))
	require.NoError(t, studentDB.CreateStudent(ctx, sampleStudent()))

	list, err := studentDB.GetAllStudents(ctx)
	assert.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Amara Perera", list[0].Name)
}
