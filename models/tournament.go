package models

import "time"

// Tournament is one social doubles round. MaxPairs is the only setting the
// scheduling core reads; nil means unlimited.
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Name      string    `json:"name" db:"name"`
	MaxPairs  *int      `json:"max_pairs" db:"max_pairs"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
