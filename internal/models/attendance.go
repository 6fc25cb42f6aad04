package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses. "N" is also what a roster row reports when no
// attendance record exists yet.
const (
	AttendanceYes = "Y"
	AttendanceNo  = "N"
)

// Attendance records a Y/N outcome for a student at an event. A row is only
// valid while the matching Registration exists; cancelling the registration
// deletes it.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	EventID   int64  `bun:"event_id,pk"`
	StudentID string `bun:"student_id,pk"`
	Attended  string `bun:"attended,notnull"`
}

// AttendanceRow is one line of an event's attendance sheet.
type AttendanceRow struct {
	StudentID string `bun:"student_id" json:"student_id"`
	Name      string `bun:"name" json:"name"`
	Attended  string `bun:"attended" json:"attended"`
}

// AttendanceEvent is the payload streamed to Kafka when attendance is marked.
type AttendanceEvent struct {
	EventID   int64     `json:"event_id"`
	StudentID string    `json:"student_id"`
	Attended  string    `json:"attended"`
	At        time.Time `json:"at"`
}

// EventStats summarises registration and attendance for one event.
type EventStats struct {
	EventID    int64   `json:"event_id"`
	EventName  string  `json:"event_name"`
	Registered int     `json:"registered"`
	Attended   int     `json:"attended"`
	Percentage float64 `json:"percentage"`
}
