package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/pkg/database"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	pool database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool database.DBTX) *CartRepository {
	return &CartRepository{pool: pool}
}

// AddItem inserts a cart line or, when the product is already in the cart,
// adds to the existing quantity.
func (r *CartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		now,
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	return nil
}

// GetCart returns all cart lines of a user with products loaded.
func (r *CartRepository) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.id, p.title, p.description, p.price, p.stock, p.image_url, p.category_id, p.restaurant_id, p.approval, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item domain.CartItem
			p    domain.Product
		)
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Stock,
			&p.ImageURL,
			&p.CategoryID,
			&p.RestaurantID,
			&p.Approval,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}

	if items == nil {
		items = []domain.CartItem{}
	}

	return items, nil
}

// UpdateQuantity sets the quantity of a cart line.
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE user_id = $3 AND product_id = $4`

	ct, err := r.pool.Exec(ctx, query, quantity, time.Now().UTC(), userID, productID)
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", productID)
	}

	return nil
}

// RemoveItem deletes a cart line.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	ct, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", productID)
	}

	return nil
}

// Clear empties a user's cart.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
