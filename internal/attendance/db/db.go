package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"ms-attendance/internal/models"
	"ms-attendance/internal/utils"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotRegistered = errors.New("student is not registered for this event")
)

// FutureEventError rejects attendance for an event whose date has not
// arrived yet. It carries the event date for the caller's message.
type FutureEventError struct {
	EventDate time.Time
}

func (e *FutureEventError) Error() string {
	return fmt.Sprintf("attendance can only be marked on or after the event date (%s)",
		e.EventDate.Format("2006-01-02"))
}

type DB struct {
	Bun *bun.DB
}

// MarkAttendance records or updates the student's attendance inside one
// transaction. The write is a single conditional upsert, not a read-then-
// branch: two concurrent marks for the same pair must not both insert.
func (d *DB) MarkAttendance(ctx context.Context, eventID int64, studentID, status string, today time.Time) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var event models.Event
		err := tx.NewSelect().
			Model(&event).
			Column("event_date").
			Where("event_id = ?", eventID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEventNotFound
			}
			return err
		}

		if utils.DateOnly(event.Date).After(utils.DateOnly(today)) {
			return &FutureEventError{EventDate: event.Date}
		}

		registered, err := tx.NewSelect().
			Model((*models.Registration)(nil)).
			Where("event_id = ? AND student_id = ?", eventID, studentID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !registered {
			return ErrNotRegistered
		}

		att := models.Attendance{
			EventID:   eventID,
			StudentID: studentID,
			Attended:  status,
		}
		_, err = tx.NewInsert().
			Model(&att).
			On("CONFLICT (event_id, student_id) DO UPDATE").
			Set("attended = EXCLUDED.attended").
			Exec(ctx)
		return err
	})
}

// EventAttendance returns the attendance sheet for an event: every
// registered student, with missing attendance reported as "N", ordered by
// student name.
func (d *DB) EventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRow, error) {
	var rows []models.AttendanceRow
	err := d.Bun.NewSelect().
		TableExpr("registrations AS r").
		ColumnExpr("s.student_id, s.name").
		ColumnExpr("COALESCE(a.attended, ?) AS attended", models.AttendanceNo).
		Join("JOIN students AS s ON s.student_id = r.student_id").
		Join("LEFT JOIN attendance AS a ON a.event_id = r.event_id AND a.student_id = r.student_id").
		Where("r.event_id = ?", eventID).
		OrderExpr("s.name ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
