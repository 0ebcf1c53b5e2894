package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// CartService manages the per-user shopping cart. Stock is pre-checked on
// every mutation so the cart never holds more of a product than the
// restaurant can deliver; checkout re-validates inside its transaction.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService creates a CartService.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the actor's cart with the total computed.
func (s *CartService) Get(ctx context.Context, actor domain.Actor) (*domain.Cart, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to view your cart")
	}

	items, err := s.carts.GetCart(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	cart := &domain.Cart{UserID: actor.UserID, Items: items}
	cart.ComputeTotal()

	return cart, nil
}

// Add puts quantity units of a product into the cart, merging with any
// existing line for the same product.
func (s *CartService) Add(ctx context.Context, actor domain.Actor, productID string, quantity int) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to use the cart")
	}
	if quantity <= 0 {
		return apperrors.InvalidInput("quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	current := 0
	items, err := s.carts.GetCart(ctx, actor.UserID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ProductID == productID {
			current = item.Quantity
			break
		}
	}

	if !product.InStock(current + quantity) {
		return apperrors.OutOfStock(product.Title, product.Stock)
	}

	return s.carts.AddItem(ctx, &domain.CartItem{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, actor domain.Actor, productID string, quantity int) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to use the cart")
	}

	if quantity <= 0 {
		return s.carts.RemoveItem(ctx, actor.UserID, productID)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.InStock(quantity) {
		return apperrors.OutOfStock(product.Title, product.Stock)
	}

	return s.carts.UpdateQuantity(ctx, actor.UserID, productID, quantity)
}

// Remove deletes a cart line.
func (s *CartService) Remove(ctx context.Context, actor domain.Actor, productID string) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to use the cart")
	}
	return s.carts.RemoveItem(ctx, actor.UserID, productID)
}

// Clear empties the actor's cart.
func (s *CartService) Clear(ctx context.Context, actor domain.Actor) error {
	if actor.IsAnonymous() {
		return apperrors.Unauthorized("sign in to use the cart")
	}
	return s.carts.Clear(ctx, actor.UserID)
}
