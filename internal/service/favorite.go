package service

import (
	"context"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// FavoriteService manages saved products.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
	carts     *CartService
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(
	favorites repository.FavoriteRepository,
	products repository.ProductRepository,
	carts *CartService,
) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		products:  products,
		carts:     carts,
	}
}

// List returns the actor's saved products, newest first.
func (s *FavoriteService) List(ctx context.Context, actor domain.Actor) ([]domain.Favorite, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to view favorites")
	}
	return s.favorites.List(ctx, actor.UserID)
}

// Add saves a product. Re-adding is a no-op.
func (s *FavoriteService) Add(ctx context.Context, actor domain.Actor, productID string) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to save favorites")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}

	return s.favorites.Add(ctx, actor.UserID, productID)
}

// Remove drops a product from the actor's favorites.
func (s *FavoriteService) Remove(ctx context.Context, actor domain.Actor, productID string) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to manage favorites")
	}
	return s.favorites.Remove(ctx, actor.UserID, productID)
}

// Toggle flips whether a product is saved and reports the new state.
func (s *FavoriteService) Toggle(ctx context.Context, actor domain.Actor, productID string) (bool, error) {
	if actor.IsAnonymous() {
		return false, apperrors.Unauthorized("sign in to manage favorites")
	}

	exists, err := s.favorites.Exists(ctx, actor.UserID, productID)
	if err != nil {
		return false, err
	}

	if exists {
		return false, s.favorites.Remove(ctx, actor.UserID, productID)
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return false, err
	}

	return true, s.favorites.Add(ctx, actor.UserID, productID)
}

// MoveToCart puts a saved product into the cart and removes it from
// favorites. The favorite is checked first so a product that was never
// saved fails without touching the cart, and stock is checked by the
// cart, so an out-of-stock product stays saved.
func (s *FavoriteService) MoveToCart(ctx context.Context, actor domain.Actor, productID string) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to manage favorites")
	}

	exists, err := s.favorites.Exists(ctx, actor.UserID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("favorite", productID)
	}

	if err := s.carts.Add(ctx, actor, productID, 1); err != nil {
		return err
	}

	return s.favorites.Remove(ctx, actor.UserID, productID)
}
