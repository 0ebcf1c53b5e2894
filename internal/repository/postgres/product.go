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

const productColumns = `id, title, description, price, stock, image_url, category_id, restaurant_id, approval, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, stock, image_url, category_id, restaurant_id, approval, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Price,
		p.Stock,
		p.ImageURL,
		p.CategoryID,
		p.RestaurantID,
		p.Approval,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
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
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// ListByRestaurant returns all products of a restaurant.
func (r *ProductRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE restaurant_id = $1 ORDER BY title`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list products by restaurant: %w", err)
	}

	return collectProducts(rows)
}

// ListAwaitingReview returns products pending admin review, oldest first.
func (r *ProductRepository) ListAwaitingReview(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE approval = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, domain.ProductPending)
	if err != nil {
		return nil, fmt.Errorf("list pending products: %w", err)
	}

	return collectProducts(rows)
}

// Update modifies an existing product in the database.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET title = $1, description = $2, price = $3, stock = $4, image_url = $5,
		    category_id = $6, approval = $7, updated_at = $8
		WHERE id = $9`

	ct, err := r.pool.Exec(ctx, query,
		p.Title,
		p.Description,
		p.Price,
		p.Stock,
		p.ImageURL,
		p.CategoryID,
		p.Approval,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// UpdateApproval sets the approval state of a product.
func (r *ProductRepository) UpdateApproval(ctx context.Context, id string, approval domain.ProductApproval) error {
	query := `UPDATE products SET approval = $1, updated_at = $2 WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, approval, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update product approval: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// Delete removes a product together with its cart, favorite, and review rows.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete product: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dependentDeletes := []string{
		`DELETE FROM cart_items WHERE product_id = $1`,
		`DELETE FROM favorites WHERE product_id = $1`,
		`DELETE FROM reviews WHERE product_id = $1`,
	}

	for _, q := range dependentDeletes {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return fmt.Errorf("delete product dependents: %w", err)
		}
	}

	ct, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete product: %w", err)
	}

	return nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var products []domain.Product
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
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
