package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Registration holds one of an event's capacity slots for a student.
// At most one row may exist per (event, student) pair.
type Registration struct {
	bun.BaseModel `bun:"table:registrations"`

	EventID   int64     `bun:"event_id,pk"`
	StudentID string    `bun:"student_id,pk"`
	RegDate   time.Time `bun:"reg_date,notnull"`
}

// RegisteredStudent is a roster row: student details joined with the
// registration timestamp.
type RegisteredStudent struct {
	StudentID string    `bun:"student_id" json:"student_id"`
	Name      string    `bun:"name" json:"name"`
	Email     string    `bun:"email" json:"email"`
	RegDate   time.Time `bun:"reg_date" json:"reg_date"`
}

// RegistrationEvent is the payload streamed to Kafka when a registration
// is created or cancelled.
type RegistrationEvent struct {
	EventID   int64     `json:"event_id"`
	StudentID string    `json:"student_id"`
	Action    string    `json:"action"` // "created" or "cancelled"
	At        time.Time `json:"at"`
}
