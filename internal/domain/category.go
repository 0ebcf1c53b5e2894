package domain

import (
	"time"
)

// Category groups products for filtered browsing (e.g. "Pizza", "Desert").
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
