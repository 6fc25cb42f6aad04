package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"ms-attendance/internal/models"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrAlreadyRegistered = errors.New("student is already registered for this event")
	ErrCapacityExceeded  = errors.New("event is full")
)

type DB struct {
	Bun *bun.DB
}

// CreateRegistration registers a student inside one transaction. The event
// row stays locked from the capacity read through the insert so concurrent
// attempts against the same event serialise; without the lock two attempts
// can both pass the capacity check and overbook.
func (d *DB) CreateRegistration(ctx context.Context, eventID int64, studentID string, registeredAt time.Time) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var event models.Event
		query := tx.NewSelect().
			Model(&event).
			Column("total_slots").
			Where("event_id = ?", eventID)
		// SQLite takes a database-level write lock inside a transaction;
		// FOR UPDATE is a Postgres-only construct there is no need to emulate.
		if d.Bun.Dialect().Name() == dialect.PG {
			query = query.For("UPDATE")
		}
		if err := query.Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEventNotFound
			}
			return err
		}

		exists, err := tx.NewSelect().
			Model((*models.Student)(nil)).
			Where("student_id = ?", studentID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrStudentNotFound
		}

		registered, err := tx.NewSelect().
			Model((*models.Registration)(nil)).
			Where("event_id = ? AND student_id = ?", eventID, studentID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}

		count, err := tx.NewSelect().
			Model((*models.Registration)(nil)).
			Where("event_id = ?", eventID).
			Count(ctx)
		if err != nil {
			return err
		}
		if count >= event.TotalSlots {
			return ErrCapacityExceeded
		}

		reg := models.Registration{
			EventID:   eventID,
			StudentID: studentID,
			RegDate:   registeredAt,
		}
		_, err = tx.NewInsert().Model(&reg).Exec(ctx)
		return err
	})
}

// CancelRegistration deletes the attendance record first, then the
// registration, in one transaction. Attendance goes first so the
// attendance-requires-registration invariant holds even mid-transaction.
// Returns the number of registrations removed (0 when none existed).
func (d *DB) CancelRegistration(ctx context.Context, eventID int64, studentID string) (int64, error) {
	var removed int64
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.Attendance)(nil)).
			Where("event_id = ? AND student_id = ?", eventID, studentID).
			Exec(ctx)
		if err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Registration)(nil)).
			Where("event_id = ? AND student_id = ?", eventID, studentID).
			Exec(ctx)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	return removed, err
}

// RegisteredStudents returns the event roster ordered by student name.
func (d *DB) RegisteredStudents(ctx context.Context, eventID int64) ([]models.RegisteredStudent, error) {
	var rows []models.RegisteredStudent
	err := d.Bun.NewSelect().
		TableExpr("students AS s").
		ColumnExpr("s.student_id, s.name, s.email, r.reg_date").
		Join("JOIN registrations AS r ON r.student_id = s.student_id").
		Where("r.event_id = ?", eventID).
		OrderExpr("s.name ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IsRegistered reports whether the student currently holds a slot.
func (d *DB) IsRegistered(ctx context.Context, eventID int64, studentID string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Registration)(nil)).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Exists(ctx)
}
