package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID         int64     `bun:"event_id,pk,autoincrement"`
	Name       string    `bun:"event_name,notnull"`
	Date       time.Time `bun:"event_date,notnull"`
	Time       string    `bun:"event_time,notnull"` // e.g. "07:00 PM"
	Venue      string    `bun:"venue,notnull"`
	TotalSlots int       `bun:"total_slots,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
