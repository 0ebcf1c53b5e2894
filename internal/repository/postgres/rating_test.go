package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristiarazvan/gogogo/internal/domain"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

func TestRatingRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rating := domain.Rating{
		ID:           "rating-1",
		UserID:       "user-1",
		RestaurantID: "rest-1",
		Score:        4,
	}

	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(rating.ID, rating.UserID, rating.RestaurantID, rating.Score, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), &rating)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_GetByUser_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM ratings").
		WithArgs("user-1", "rest-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "restaurant_id", "score", "created_at", "updated_at"}))

	_, err := repo.GetByUser(context.Background(), "user-1", "rest-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_AddItem(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	item := domain.CartItem{
		ID:        "cart-1",
		UserID:    "user-1",
		ProductID: "prod-1",
		Quantity:  2,
	}

	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs(item.ID, item.UserID, item.ProductID, item.Quantity, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.AddItem(context.Background(), &item)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_GetCart_LoadsProducts(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	p := sampleProduct()
	cartColumns := []string{
		"id", "user_id", "product_id", "quantity", "created_at", "updated_at",
		"p_id", "title", "description", "price", "stock", "image_url",
		"category_id", "restaurant_id", "approval", "p_created_at", "p_updated_at",
	}

	mock.ExpectQuery("SELECT (.+) FROM cart_items").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(
			"cart-1", "user-1", p.ID, 2, now, now,
			p.ID, p.Title, p.Description, p.Price, p.Stock, p.ImageURL,
			p.CategoryID, p.RestaurantID, p.Approval, p.CreatedAt, p.UpdatedAt,
		))

	items, err := repo.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Margherita", items[0].Product.Title)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartRepository_UpdateQuantity_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	mock.ExpectExec("UPDATE cart_items").
		WithArgs(3, pgxmock.AnyArg(), "user-1", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateQuantity(context.Background(), "user-1", "missing", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFavoriteRepository_Add_IsIdempotent(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewFavoriteRepository(mock)

	// ON CONFLICT DO NOTHING reports zero rows on re-add, which is fine.
	mock.ExpectExec("INSERT INTO favorites").
		WithArgs("user-1", "prod-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := repo.Add(context.Background(), "user-1", "prod-1")
	require.NoError(t, err)
}

func TestFavoriteRepository_Exists(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewFavoriteRepository(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "user-1", "prod-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
