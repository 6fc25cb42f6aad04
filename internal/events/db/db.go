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

// CreateEvent inserts the event and fills in its generated identifier.
func (d *DB) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return err
}

// GetEventByID returns a single event or ErrEventNotFound.
func (d *DB) GetEventByID(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetAllEvents lists events, most recent date first.
func (d *DB) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		OrderExpr("event_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
