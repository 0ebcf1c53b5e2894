package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/pkg/database"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var restaurantColumns = []string{
	"id", "name", "slug", "image_url", "owner_id", "approval",
	"created_at", "updated_at", "average_rating", "rating_count",
}

func sampleRestaurant() domain.Restaurant {
	return domain.Restaurant{
		ID:            "rest-1",
		Name:          "Pizza Palace",
		Slug:          "pizza-palace",
		ImageURL:      "https://cdn.example.com/pizza-palace.jpg",
		OwnerID:       "user-1",
		Approval:      domain.RestaurantApproved,
		CreatedAt:     now,
		UpdatedAt:     now,
		AverageRating: 4.5,
		RatingCount:   12,
	}
}

func restaurantRow(r domain.Restaurant) []any {
	return []any{
		r.ID, r.Name, r.Slug, r.ImageURL, r.OwnerID, r.Approval,
		r.CreatedAt, r.UpdatedAt, r.AverageRating, r.RatingCount,
	}
}

var productTestColumns = []string{
	"id", "title", "description", "price", "stock", "image_url",
	"category_id", "restaurant_id", "approval", "created_at", "updated_at",
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:           "prod-1",
		Title:        "Margherita",
		Description:  "Tomato, mozzarella, basil",
		Price:        35.5,
		Stock:        20,
		ImageURL:     "https://cdn.example.com/margherita.jpg",
		CategoryID:   strPtr("cat-1"),
		RestaurantID: "rest-1",
		Approval:     domain.ProductApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func productRow(p domain.Product) []any {
	return []any{
		p.ID, p.Title, p.Description, p.Price, p.Stock, p.ImageURL,
		p.CategoryID, p.RestaurantID, p.Approval, p.CreatedAt, p.UpdatedAt,
	}
}

func TestRestaurantRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	r := sampleRestaurant()

	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs(r.ID, r.Name, r.Slug, r.ImageURL, r.OwnerID, r.Approval, r.CreatedAt, r.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &r)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantRepository_Create_DuplicateSlug(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	r := sampleRestaurant()

	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs(r.ID, r.Name, r.Slug, r.ImageURL, r.OwnerID, r.Approval, r.CreatedAt, r.UpdatedAt).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &r)
	require.Error(t, err)
}

func TestRestaurantRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	r := sampleRestaurant()

	mock.ExpectQuery("SELECT (.+) FROM restaurants").
		WithArgs(r.ID).
		WillReturnRows(pgxmock.NewRows(restaurantColumns).AddRow(restaurantRow(r)...))

	got, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Name, got.Name)
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Equal(t, 12, got.RatingCount)
}

func TestRestaurantRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM restaurants").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(restaurantColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRestaurantRepository_ListWithProducts_GroupsProducts(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	r1 := sampleRestaurant()
	r2 := sampleRestaurant()
	r2.ID = "rest-2"
	r2.Name = "Sushi Spot"
	r2.Slug = "sushi-spot"

	p := sampleProduct()

	mock.ExpectQuery("SELECT (.+) FROM restaurants").
		WillReturnRows(pgxmock.NewRows(restaurantColumns).
			AddRow(restaurantRow(r1)...).
			AddRow(restaurantRow(r2)...))

	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnRows(pgxmock.NewRows(productTestColumns).AddRow(productRow(p)...))

	got, err := repo.ListWithProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Products, 1)
	assert.Equal(t, "Margherita", got[0].Products[0].Title)
	assert.Empty(t, got[1].Products)
}

func TestRestaurantRepository_ListAwaitingReview(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	r := sampleRestaurant()
	r.Approval = domain.RestaurantPending

	mock.ExpectQuery("SELECT (.+) FROM restaurants").
		WithArgs(domain.RestaurantPending, domain.RestaurantCollaboratorPending).
		WillReturnRows(pgxmock.NewRows(restaurantColumns).AddRow(restaurantRow(r)...))

	got, err := repo.ListAwaitingReview(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RestaurantPending, got[0].Approval)
}

func TestRestaurantRepository_UpdateApproval_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	mock.ExpectExec("UPDATE restaurants SET approval").
		WithArgs(domain.RestaurantApproved, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateApproval(context.Background(), "missing", domain.RestaurantApproved)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRestaurantRepository_DeleteCascade_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cart_items").WithArgs("rest-1").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM favorites").WithArgs("rest-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM reviews").WithArgs("rest-1").WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM products").WithArgs("rest-1").WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec("DELETE FROM ratings").WithArgs("rest-1").WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectExec("DELETE FROM restaurants").WithArgs("rest-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := repo.DeleteCascade(context.Background(), "rest-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantRepository_DeleteCascade_NotFoundRollsBack(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRestaurantRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cart_items").WithArgs("missing").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM favorites").WithArgs("missing").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM reviews").WithArgs("missing").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM products").WithArgs("missing").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM ratings").WithArgs("missing").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM restaurants").WithArgs("missing").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
