package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cristiarazvan/gogogo/internal/domain"
)

func TestAdminApproveRestaurant(t *testing.T) {
	env := newTestEnv()

	pending := browseRestaurant(testRestaurantID, "New Kitchen", domain.RestaurantPending)
	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(&pending, nil)
	env.restaurants.On("UpdateApproval", mock.Anything, testRestaurantID, domain.RestaurantApproved).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/restaurants/"+testRestaurantID+"/approve", nil)
	req.Header.Set("Authorization", env.token(t, testAdminID, "admin"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.restaurants.AssertExpectations(t)
}

func TestAdminApproveRestaurantWithoutImageRejected(t *testing.T) {
	env := newTestEnv()

	pending := browseRestaurant(testRestaurantID, "New Kitchen", domain.RestaurantPending)
	pending.ImageURL = ""
	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(&pending, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/restaurants/"+testRestaurantID+"/approve", nil)
	req.Header.Set("Authorization", env.token(t, testAdminID, "admin"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.restaurants.AssertNotCalled(t, "UpdateApproval", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminRoutesForbiddenForCustomers(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/restaurants/"+testRestaurantID+"/approve", nil)
	req.Header.Set("Authorization", env.token(t, testCustomerID, "customer"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env.restaurants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAdminRejectRestaurantCascades(t *testing.T) {
	env := newTestEnv()

	pending := browseRestaurant(testRestaurantID, "New Kitchen", domain.RestaurantPending)
	env.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(&pending, nil)
	env.restaurants.On("DeleteCascade", mock.Anything, testRestaurantID).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/restaurants/"+testRestaurantID+"/reject", nil)
	req.Header.Set("Authorization", env.token(t, testAdminID, "admin"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.restaurants.AssertExpectations(t)
}

func TestAdminPendingReview(t *testing.T) {
	env := newTestEnv()

	env.restaurants.On("ListAwaitingReview", mock.Anything).Return([]domain.Restaurant{
		browseRestaurant(testRestaurantID, "New Kitchen", domain.RestaurantPending),
	}, nil)
	env.products.On("ListAwaitingReview", mock.Anything).Return([]domain.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/pending", nil)
	req.Header.Set("Authorization", env.token(t, testAdminID, "admin"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.NotNil(t, resp.Data)
}

func TestChatAlwaysReplies(t *testing.T) {
	env := newTestEnv()

	body := bytes.NewBufferString(`{"message":"Is this pizza spicy?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+testProductID+"/chat", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	// The assistant has no model configured in tests; the endpoint still
	// answers 200 with a fallback message instead of failing.
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["reply"])
}
