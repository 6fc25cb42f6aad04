package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"ms-attendance/internal/models"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicate       = errors.New("student id or email already exists")
)

type DB struct {
	Bun *bun.DB
}

// IsUniqueViolation detects unique-constraint failures from either driver in
// use (pgdriver in production, sqliteshim in tests).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// CreateStudent inserts a new student; duplicate id or email surfaces as
// ErrDuplicate.
func (d *DB) CreateStudent(ctx context.Context, student *models.Student) error {
	_, err := d.Bun.NewInsert().Model(student).Exec(ctx)
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetStudentByID returns a single student or ErrStudentNotFound.
func (d *DB) GetStudentByID(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	err := d.Bun.NewSelect().
		Model(&student).
		Where("student_id = ?", studentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetAllStudents lists students ordered by name.
func (d *DB) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := d.Bun.NewSelect().
		Model(&students).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return students, nil
}

// UpdateStudent rewrites the student's mutable fields. Zero rows affected
// means the student does not exist.
func (d *DB) UpdateStudent(ctx context.Context, student *models.Student) error {
	res, err := d.Bun.NewUpdate().
		Model(student).
		Column("name", "email", "course", "year").
		Where("student_id = ?", student.ID).
		Exec(ctx)
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// DeleteStudent removes a student. Zero rows affected means the student does
// not exist.
func (d *DB) DeleteStudent(ctx context.Context, studentID string) error {
	res, err := d.Bun.NewDelete().
		Model((*models.Student)(nil)).
		Where("student_id = ?", studentID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStudentNotFound
	}
	return nil
}
