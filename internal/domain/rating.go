package domain

import (
	"time"
)

// Restaurant rating score bounds.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is a single user's star score for a restaurant. A user has at most
// one rating per restaurant; re-rating overwrites the previous score.
type Rating struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
