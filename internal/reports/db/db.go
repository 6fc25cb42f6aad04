package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-attendance/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

type DB struct {
	Bun *bun.DB
}

// EventCounts reads the event name plus the registration and attendance
// counts in one transaction so the two counts describe the same snapshot.
func (d *DB) EventCounts(ctx context.Context, eventID int64) (*models.EventStats, error) {
	stats := &models.EventStats{EventID: eventID}

	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var event models.Event
		err := tx.NewSelect().
			Model(&event).
			Column("event_name").
			Where("event_id = ?", eventID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEventNotFound
			}
			return err
		}
		stats.EventName = event.Name

		registered, err := tx.NewSelect().
			Model((*models.Registration)(nil)).
			Where("event_id = ?", eventID).
			Count(ctx)
		if err != nil {
			return err
		}
		stats.Registered = registered

		attended, err := tx.NewSelect().
			Model((*models.Attendance)(nil)).
			Where("event_id = ? AND attended = ?", eventID, models.AttendanceYes).
			Count(ctx)
		if err != nil {
			return err
		}
		stats.Attended = attended
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
