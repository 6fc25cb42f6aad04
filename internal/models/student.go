package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Student struct {
	bun.BaseModel `bun:"table:students"`

	ID        string    `bun:"student_id,pk"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,unique,notnull"`
	Course    string    `bun:"course"`
	Year      int       `bun:"year"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
