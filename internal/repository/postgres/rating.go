package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/pkg/database"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Upsert records a user's score for a restaurant. The unique constraint on
// (user_id, restaurant_id) makes re-rating overwrite the previous score in
// one atomic statement, so concurrent submissions never produce duplicates.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, restaurant_id, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, restaurant_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		rating.ID,
		rating.UserID,
		rating.RestaurantID,
		rating.Score,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	return nil
}

// GetByUser returns the score a user gave a restaurant, if any.
func (r *RatingRepository) GetByUser(ctx context.Context, userID, restaurantID string) (*domain.Rating, error) {
	query := `
		SELECT id, user_id, restaurant_id, score, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND restaurant_id = $2`

	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, userID, restaurantID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.RestaurantID,
		&rating.Score,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan rating: %w", err)
	}

	return &rating, nil
}
