package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pool is a named group of participants eligible to be matched with one
// another.
type Pool struct {
	ID        uuid.UUID `db:"id" json:"pool_id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PoolMember struct {
	PoolID   uuid.UUID `db:"pool_id" json:"pool_id"`
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
