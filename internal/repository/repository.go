package repository

import (
	"context"

	"github.com/cristiarazvan/gogogo/internal/domain"
)

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	// Create inserts a new restaurant.
	Create(ctx context.Context, restaurant *domain.Restaurant) error

	// GetByID retrieves a restaurant with its rating aggregates.
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)

	// GetBySlug retrieves a restaurant by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)

	// ListWithProducts returns all restaurants with their products and
	// rating aggregates eagerly loaded. The browse engine filters and
	// orders the result in memory.
	ListWithProducts(ctx context.Context) ([]domain.Restaurant, error)

	// ListAwaitingReview returns restaurants in a pending state, oldest first.
	ListAwaitingReview(ctx context.Context) ([]domain.Restaurant, error)

	// Update modifies an existing restaurant.
	Update(ctx context.Context, restaurant *domain.Restaurant) error

	// UpdateApproval sets the approval state of a restaurant.
	UpdateApproval(ctx context.Context, id string, approval domain.RestaurantApproval) error

	// DeleteCascade removes a restaurant together with its products,
	// ratings, and dependent cart and favorite rows in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListByRestaurant returns all products of a restaurant.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Product, error)

	// ListAwaitingReview returns products pending admin review, oldest first.
	ListAwaitingReview(ctx context.Context) ([]domain.Product, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// UpdateApproval sets the approval state of a product.
	UpdateApproval(ctx context.Context, id string, approval domain.ProductApproval) error

	// Delete removes a product and its dependent cart, favorite, and
	// review rows.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns reviews for a product, newest first. A limit
	// of 0 means no limit.
	ListByProduct(ctx context.Context, productID string, limit int) ([]domain.Review, error)

	Delete(ctx context.Context, id string) error
}

// RatingRepository defines persistence operations for restaurant ratings.
type RatingRepository interface {
	// Upsert records a user's score for a restaurant, overwriting any
	// previous score in a single atomic statement.
	Upsert(ctx context.Context, rating *domain.Rating) error

	// GetByUser returns the score a user gave a restaurant, if any.
	GetByUser(ctx context.Context, userID, restaurantID string) (*domain.Rating, error)
}

// CartRepository defines persistence operations for cart items.
type CartRepository interface {
	// AddItem inserts a cart line or increases the quantity of an
	// existing line for the same product.
	AddItem(ctx context.Context, item *domain.CartItem) error

	// GetCart returns all cart lines of a user with products loaded.
	GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)

	// UpdateQuantity sets the quantity of a cart line.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// RemoveItem deletes a cart line.
	RemoveItem(ctx context.Context, userID, productID string) error

	// Clear empties a user's cart.
	Clear(ctx context.Context, userID string) error
}

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	// Add saves a product to a user's favorites. Adding an existing
	// favorite is a no-op.
	Add(ctx context.Context, userID, productID string) error

	Remove(ctx context.Context, userID, productID string) error

	// Exists reports whether the product is in the user's favorites.
	Exists(ctx context.Context, userID, productID string) (bool, error)

	// List returns a user's favorites with products loaded, newest first.
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// CreateCheckout persists an order with its items, decrements stock
	// for every line, and clears the user's cart in one transaction.
	// When stock cannot cover a line the whole transaction is rolled
	// back and an out-of-stock error naming the product is returned.
	CreateCheckout(ctx context.Context, order *domain.Order) error

	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByUser returns a user's orders with items, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
