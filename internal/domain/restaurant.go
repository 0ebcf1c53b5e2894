package domain

import (
	"time"
)

// RestaurantApproval is the moderation state of a restaurant.
type RestaurantApproval string

const (
	// RestaurantPending is the initial state for restaurants created by
	// regular users. They are hidden from anonymous browsing.
	RestaurantPending RestaurantApproval = "pending"

	// RestaurantApproved restaurants are publicly visible.
	RestaurantApproved RestaurantApproval = "approved"

	// RestaurantCollaboratorPending is the initial state for restaurants
	// created by collaborators. Admins review them alongside regular
	// pending submissions.
	RestaurantCollaboratorPending RestaurantApproval = "collaborator_pending"
)

// ValidRestaurantApprovals returns the set of valid restaurant approval states.
func ValidRestaurantApprovals() []RestaurantApproval {
	return []RestaurantApproval{RestaurantPending, RestaurantApproved, RestaurantCollaboratorPending}
}

// IsValid checks whether the approval state is one of the known states.
func (a RestaurantApproval) IsValid() bool {
	for _, s := range ValidRestaurantApprovals() {
		if s == a {
			return true
		}
	}
	return false
}

// AwaitingReview reports whether the restaurant still needs an admin decision.
func (a RestaurantApproval) AwaitingReview() bool {
	return a == RestaurantPending || a == RestaurantCollaboratorPending
}

// Restaurant represents a restaurant on the marketplace.
type Restaurant struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	ImageURL  string             `json:"image_url,omitempty"`
	OwnerID   string             `json:"owner_id"`
	Approval  RestaurantApproval `json:"approval"`
	Products  []Product          `json:"products,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Rating aggregates, loaded alongside the restaurant.
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// ReadyForApproval reports whether the restaurant carries everything an
// approved listing must have: a name and an image.
func (r Restaurant) ReadyForApproval() bool {
	return r.Name != "" && r.ImageURL != ""
}

// InitialRestaurantApproval returns the state a newly created restaurant
// starts in, based on who creates it. Admin submissions go live immediately.
func InitialRestaurantApproval(creatorRole Role) RestaurantApproval {
	switch creatorRole {
	case RoleAdmin:
		return RestaurantApproved
	case RoleCollaborator:
		return RestaurantCollaboratorPending
	default:
		return RestaurantPending
	}
}
