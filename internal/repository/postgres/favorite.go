package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/pkg/database"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// FavoriteRepository implements repository.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	pool database.DBTX
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorite repository.
func NewFavoriteRepository(pool database.DBTX) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Add saves a product to a user's favorites. Re-adding is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, productID string) error {
	query := `
		INSERT INTO favorites (user_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, userID, productID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	return nil
}

// Remove deletes a product from a user's favorites.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`

	ct, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("favorite", productID)
	}

	return nil
}

// Exists reports whether the product is in the user's favorites.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	return exists, nil
}

// List returns a user's favorites with products loaded, newest first.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	query := `
		SELECT f.user_id, f.product_id, f.created_at,
		       p.id, p.title, p.description, p.price, p.stock, p.image_url, p.category_id, p.restaurant_id, p.approval, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var (
			f domain.Favorite
			p domain.Product
		)
		if err := rows.Scan(
			&f.UserID,
			&f.ProductID,
			&f.CreatedAt,
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
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		f.Product = &p
		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}

	if favorites == nil {
		favorites = []domain.Favorite{}
	}

	return favorites, nil
}
