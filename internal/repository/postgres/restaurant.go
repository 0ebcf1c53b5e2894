package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/pkg/database"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

const restaurantSelect = `
	SELECT r.id, r.name, r.slug, r.image_url, r.owner_id, r.approval, r.created_at, r.updated_at,
	       COALESCE(avg(rt.score), 0)::float8 AS average_rating,
	       count(rt.id) AS rating_count
	FROM restaurants r
	LEFT JOIN ratings rt ON rt.restaurant_id = r.id`

// RestaurantRepository implements repository.RestaurantRepository using PostgreSQL.
type RestaurantRepository struct {
	pool database.DBTX
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool database.DBTX) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// Create inserts a new restaurant into the database.
func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, slug, image_url, owner_id, approval, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rest.ID,
		rest.Name,
		rest.Slug,
		rest.ImageURL,
		rest.OwnerID,
		rest.Approval,
		rest.CreatedAt,
		rest.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("restaurant", "slug", rest.Slug)
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}

	return nil
}

// GetByID retrieves a restaurant with its rating aggregates.
func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := restaurantSelect + `
	WHERE r.id = $1
	GROUP BY r.id`

	return r.scanRestaurant(ctx, query, id)
}

// GetBySlug retrieves a restaurant by its slug.
func (r *RestaurantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	query := restaurantSelect + `
	WHERE r.slug = $1
	GROUP BY r.id`

	return r.scanRestaurant(ctx, query, slug)
}

// ListWithProducts returns all restaurants with products and rating
// aggregates loaded. Products are fetched in a second query and grouped in
// memory to avoid a row explosion on the join.
func (r *RestaurantRepository) ListWithProducts(ctx context.Context) ([]domain.Restaurant, error) {
	query := restaurantSelect + `
	GROUP BY r.id
	ORDER BY r.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	restaurants, err := collectRestaurants(rows)
	if err != nil {
		return nil, err
	}

	productsByRestaurant, err := r.loadAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range restaurants {
		restaurants[i].Products = productsByRestaurant[restaurants[i].ID]
	}

	return restaurants, nil
}

// ListAwaitingReview returns restaurants pending admin review, oldest first.
func (r *RestaurantRepository) ListAwaitingReview(ctx context.Context) ([]domain.Restaurant, error) {
	query := restaurantSelect + `
	WHERE r.approval IN ($1, $2)
	GROUP BY r.id
	ORDER BY r.created_at`

	rows, err := r.pool.Query(ctx, query, domain.RestaurantPending, domain.RestaurantCollaboratorPending)
	if err != nil {
		return nil, fmt.Errorf("list pending restaurants: %w", err)
	}

	return collectRestaurants(rows)
}

// Update modifies an existing restaurant in the database.
func (r *RestaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	rest.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE restaurants
		SET name = $1, slug = $2, image_url = $3, approval = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query,
		rest.Name,
		rest.Slug,
		rest.ImageURL,
		rest.Approval,
		rest.UpdatedAt,
		rest.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("restaurant", "slug", rest.Slug)
		}
		return fmt.Errorf("update restaurant: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("restaurant", rest.ID)
	}

	return nil
}

// UpdateApproval sets the approval state of a restaurant.
func (r *RestaurantRepository) UpdateApproval(ctx context.Context, id string, approval domain.RestaurantApproval) error {
	query := `UPDATE restaurants SET approval = $1, updated_at = $2 WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, approval, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update restaurant approval: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("restaurant", id)
	}

	return nil
}

// DeleteCascade removes a restaurant with everything hanging off it in one
// transaction: cart lines, favorites, and reviews of its products, then the
// products, the ratings, and finally the restaurant row.
func (r *RestaurantRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete restaurant: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dependentDeletes := []string{
		`DELETE FROM cart_items WHERE product_id IN (SELECT id FROM products WHERE restaurant_id = $1)`,
		`DELETE FROM favorites WHERE product_id IN (SELECT id FROM products WHERE restaurant_id = $1)`,
		`DELETE FROM reviews WHERE product_id IN (SELECT id FROM products WHERE restaurant_id = $1)`,
		`DELETE FROM products WHERE restaurant_id = $1`,
		`DELETE FROM ratings WHERE restaurant_id = $1`,
	}

	for _, q := range dependentDeletes {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return fmt.Errorf("delete restaurant dependents: %w", err)
		}
	}

	ct, err := tx.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("restaurant", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete restaurant: %w", err)
	}

	return nil
}

func (r *RestaurantRepository) scanRestaurant(ctx context.Context, query string, args ...any) (*domain.Restaurant, error) {
	var rest domain.Restaurant

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rest.ID,
		&rest.Name,
		&rest.Slug,
		&rest.ImageURL,
		&rest.OwnerID,
		&rest.Approval,
		&rest.CreatedAt,
		&rest.UpdatedAt,
		&rest.AverageRating,
		&rest.RatingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan restaurant: %w", err)
	}

	return &rest, nil
}

func (r *RestaurantRepository) loadAllProducts(ctx context.Context) (map[string][]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, price, stock, image_url, category_id, restaurant_id, approval, created_at, updated_at
		FROM products
		ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	byRestaurant := make(map[string][]domain.Product)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
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
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		byRestaurant[p.RestaurantID] = append(byRestaurant[p.RestaurantID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return byRestaurant, nil
}

func collectRestaurants(rows pgx.Rows) ([]domain.Restaurant, error) {
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(
			&rest.ID,
			&rest.Name,
			&rest.Slug,
			&rest.ImageURL,
			&rest.OwnerID,
			&rest.Approval,
			&rest.CreatedAt,
			&rest.UpdatedAt,
			&rest.AverageRating,
			&rest.RatingCount,
		); err != nil {
			return nil, fmt.Errorf("scan restaurant row: %w", err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurant rows: %w", err)
	}

	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}

	return restaurants, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
