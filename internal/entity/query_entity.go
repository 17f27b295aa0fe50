package entity

import (
	"time"

	"github.com/google/uuid"
)

// Query is a saved work package table configuration. Filters holds the raw
// filter JSON as sent by the table.
type Query struct {
	Id        uuid.UUID
	ProjectId *uuid.UUID
	UserId    uuid.UUID
	Name      string
	Public    bool
	Filters   []byte
	CreatedAt time.Time
}
