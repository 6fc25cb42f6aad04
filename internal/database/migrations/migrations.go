package migrations

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"ms-attendance/internal/models"
)

// tables in dependency order: registrations and attendance reference
// events and students.
var tables = []interface{}{
	(*models.Event)(nil),
	(*models.Student)(nil),
	(*models.Registration)(nil),
	(*models.Attendance)(nil),
}

// CreateSchema creates every table if missing. Safe to run on startup.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops and recreates the full schema. Dev and test use only.
func Reset(ctx context.Context, db *bun.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(tables[i]).IfExists().Cascade().Exec(ctx); err != nil {
			return err
		}
	}
	return CreateSchema(ctx, db)
}

// Seed inserts a small sample data set for local development.
func Seed(ctx context.Context, db *bun.DB) error {
	events := []models.Event{
		{Name: "Tech Talk: Distributed Systems", Date: time.Now().AddDate(0, 0, -1), Time: "06:00 PM", Venue: "Main Auditorium", TotalSlots: 100, CreatedAt: time.Now()},
		{Name: "Hackathon Kickoff", Date: time.Now().AddDate(0, 1, 0), Time: "09:00 AM", Venue: "Lab Block B", TotalSlots: 50, CreatedAt: time.Now()},
	}
	if _, err := db.NewInsert().Model(&events).Exec(ctx); err != nil {
		return err
	}

	students := []models.Student{
		{ID: "S001", Name: "Amara Perera", Email: "amara@example.edu", Course: "Computer Science", Year: 3, CreatedAt: time.Now()},
		{ID: "S002", Name: "Kasun Silva", Email: "kasun@example.edu", Course: "Information Systems", Year: 2, CreatedAt: time.Now()},
	}
	if _, err := db.NewInsert().Model(&students).Exec(ctx); err != nil {
		return err
	}

	registrations := []models.Registration{
		{EventID: events[0].ID, StudentID: "S001", RegDate: time.Now()},
		{EventID: events[0].ID, StudentID: "S002", RegDate: time.Now()},
	}
	_, err := db.NewInsert().Model(&registrations).Exec(ctx)
	return err
}
