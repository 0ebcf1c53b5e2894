package domain

import (
	"time"
)

// ProductApproval is the moderation state of a product.
type ProductApproval string

const (
	// ProductPending products await admin review and are hidden from
	// anonymous browsing.
	ProductPending ProductApproval = "pending"

	// ProductApproved products are publicly visible and purchasable.
	ProductApproved ProductApproval = "approved"
)

// ValidProductApprovals returns the set of valid product approval states.
func ValidProductApprovals() []ProductApproval {
	return []ProductApproval{ProductPending, ProductApproved}
}

// IsValid checks whether the approval state is one of the known states.
func (a ProductApproval) IsValid() bool {
	for _, s := range ValidProductApprovals() {
		if s == a {
			return true
		}
	}
	return false
}

// Price bounds in currency units.
const (
	MinProductPrice = 0.01
	MaxProductPrice = 10000
	MaxProductStock = 10000
)

// Product represents a dish or item sold by a restaurant.
type Product struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url,omitempty"`
	CategoryID   *string         `json:"category_id,omitempty"`
	RestaurantID string          `json:"restaurant_id"`
	Approval     ProductApproval `json:"approval"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InStock reports whether the requested quantity can be fulfilled.
func (p Product) InStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

// InitialProductApproval returns the state a newly created product starts
// in, based on who creates it.
func InitialProductApproval(creatorRole Role) ProductApproval {
	if creatorRole == RoleAdmin {
		return ProductApproved
	}
	return ProductPending
}
