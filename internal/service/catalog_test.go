package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cristiarazvan/gogogo/internal/domain"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

func newCatalogService(restRepo *mockRestaurantRepo, prodRepo *mockProductRepo, catRepo *mockCategoryRepo) *CatalogService {
	return NewCatalogService(restRepo, prodRepo, catRepo, nil, testLogger())
}

func TestCatalogService_CreateRestaurant_CustomerStartsPending(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	svc := newCatalogService(restRepo, new(mockProductRepo), new(mockCategoryRepo))

	restRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Restaurant) bool {
		return r.Approval == domain.RestaurantPending && r.OwnerID == "user-1" && r.Slug == "taco-town"
	})).Return(nil)

	actor := domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}
	restaurant, err := svc.CreateRestaurant(context.Background(), actor, RestaurantInput{Name: "Taco Town"})
	require.NoError(t, err)
	assert.Equal(t, domain.RestaurantPending, restaurant.Approval)
	restRepo.AssertExpectations(t)
}

func TestCatalogService_CreateRestaurant_AdminGoesLiveImmediately(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	svc := newCatalogService(restRepo, new(mockProductRepo), new(mockCategoryRepo))

	restRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Restaurant) bool {
		return r.Approval == domain.RestaurantApproved
	})).Return(nil)

	in := RestaurantInput{Name: "Taco Town", ImageURL: "http://img/taco.png"}
	restaurant, err := svc.CreateRestaurant(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, domain.RestaurantApproved, restaurant.Approval)
}

func TestCatalogService_CreateRestaurant_AdminWithoutImageStaysPending(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	svc := newCatalogService(restRepo, new(mockProductRepo), new(mockCategoryRepo))

	restRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Restaurant) bool {
		return r.Approval == domain.RestaurantPending
	})).Return(nil)

	restaurant, err := svc.CreateRestaurant(context.Background(), admin, RestaurantInput{Name: "Taco Town"})
	require.NoError(t, err)

	// No image means no live listing yet, regardless of who created it.
	assert.Equal(t, domain.RestaurantPending, restaurant.Approval)
	restRepo.AssertExpectations(t)
}

func TestCatalogService_CreateRestaurant_AnonymousRejected(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	svc := newCatalogService(restRepo, new(mockProductRepo), new(mockCategoryRepo))

	_, err := svc.CreateRestaurant(context.Background(), domain.Actor{}, RestaurantInput{Name: "Taco Town"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	restRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_UpdateRestaurant_OnlyOwnerOrAdmin(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	svc := newCatalogService(restRepo, new(mockProductRepo), new(mockCategoryRepo))

	restRepo.On("GetByID", mock.Anything, "rest-1").
		Return(&domain.Restaurant{ID: "rest-1", Name: "Old", OwnerID: "owner-1"}, nil)

	stranger := domain.Actor{UserID: "user-2", Role: domain.RoleCustomer}
	_, err := svc.UpdateRestaurant(context.Background(), stranger, "rest-1", RestaurantInput{Name: "New"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	restRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	restRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Restaurant) bool {
		return r.Name == "New" && r.Slug == "new"
	})).Return(nil)

	owner := domain.Actor{UserID: "owner-1", Role: domain.RoleCustomer}
	updated, err := svc.UpdateRestaurant(context.Background(), owner, "rest-1", RestaurantInput{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
}

func TestCatalogService_DeleteRestaurant_AdminCanDeleteAnyones(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	svc := newCatalogService(restRepo, new(mockProductRepo), new(mockCategoryRepo))

	restRepo.On("GetByID", mock.Anything, "rest-1").
		Return(&domain.Restaurant{ID: "rest-1", OwnerID: "owner-1"}, nil)
	restRepo.On("DeleteCascade", mock.Anything, "rest-1").Return(nil)

	err := svc.DeleteRestaurant(context.Background(), admin, "rest-1")
	require.NoError(t, err)
	restRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_UnknownCategoryRejected(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	prodRepo := new(mockProductRepo)
	catRepo := new(mockCategoryRepo)
	svc := newCatalogService(restRepo, prodRepo, catRepo)

	restRepo.On("GetByID", mock.Anything, "rest-1").
		Return(&domain.Restaurant{ID: "rest-1", OwnerID: "owner-1"}, nil)
	catRepo.On("GetByID", mock.Anything, "cat-missing").
		Return(nil, apperrors.NotFound("category", "cat-missing"))

	owner := domain.Actor{UserID: "owner-1", Role: domain.RoleCustomer}
	categoryID := "cat-missing"
	_, err := svc.CreateProduct(context.Background(), owner, ProductInput{
		Title:        "Burrito",
		Price:        25,
		RestaurantID: "rest-1",
		CategoryID:   &categoryID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	prodRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateProduct_OwnerStartsPending(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	prodRepo := new(mockProductRepo)
	svc := newCatalogService(restRepo, prodRepo, new(mockCategoryRepo))

	restRepo.On("GetByID", mock.Anything, "rest-1").
		Return(&domain.Restaurant{ID: "rest-1", OwnerID: "owner-1"}, nil)
	prodRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Approval == domain.ProductPending && p.RestaurantID == "rest-1"
	})).Return(nil)

	owner := domain.Actor{UserID: "owner-1", Role: domain.RoleCustomer}
	product, err := svc.CreateProduct(context.Background(), owner, ProductInput{
		Title:        "Burrito",
		Price:        25,
		RestaurantID: "rest-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductPending, product.Approval)
	prodRepo.AssertExpectations(t)
}

func TestCatalogService_UpdateProduct_RepoErrorPropagates(t *testing.T) {
	restRepo := new(mockRestaurantRepo)
	prodRepo := new(mockProductRepo)
	svc := newCatalogService(restRepo, prodRepo, new(mockCategoryRepo))

	boom := errors.New("connection reset")
	prodRepo.On("GetByID", mock.Anything, "prod-1").Return(nil, boom)

	_, err := svc.UpdateProduct(context.Background(), admin, "prod-1", ProductInput{Title: "X", Price: 1})
	assert.ErrorIs(t, err, boom)
}

func TestCatalogService_Categories_AdminOnly(t *testing.T) {
	catRepo := new(mockCategoryRepo)
	svc := newCatalogService(new(mockRestaurantRepo), new(mockProductRepo), catRepo)

	customer := domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}
	_, err := svc.CreateCategory(context.Background(), customer, "Pizza")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.DeleteCategory(context.Background(), customer, "cat-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	catRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	catRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	catRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Pizza" && c.Slug == "pizza"
	})).Return(nil)

	category, err := svc.CreateCategory(context.Background(), admin, "Pizza")
	require.NoError(t, err)
	assert.Equal(t, "Pizza", category.Name)
}
