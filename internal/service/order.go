package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
	"github.com/cristiarazvan/gogogo/pkg/logger"
)

// EventOrderPlaced is published after a successful checkout.
const EventOrderPlaced = "order.placed"

// OrderService turns carts into orders.
type OrderService struct {
	orders repository.OrderRepository
	carts  repository.CartRepository
	events EventProducer
	logger *slog.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	events EventProducer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders: orders,
		carts:  carts,
		events: events,
		logger: logger,
	}
}

// Checkout converts the actor's cart into an order. Each line snapshots
// the product title and price at purchase time. Stock validation and the
// decrement happen inside the repository transaction, so concurrent
// checkouts of the last unit leave exactly one winner.
func (s *OrderService) Checkout(ctx context.Context, actor domain.Actor) (*domain.Order, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to check out")
	}

	items, err := s.carts.GetCart(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := &domain.Order{
		ID:     uuid.New().String(),
		UserID: actor.UserID,
	}
	for _, item := range items {
		if item.Product == nil {
			return nil, apperrors.NotFound("product", item.ProductID)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Title:     item.Product.Title,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
		})
	}
	order.ComputeTotal()

	if err := s.orders.CreateCheckout(ctx, order); err != nil {
		return nil, err
	}

	if s.events != nil {
		payload := map[string]any{"order_id": order.ID, "user_id": order.UserID, "total": order.Total}
		if err := s.events.Publish(ctx, EventOrderPlaced, payload); err != nil {
			logger.WithContext(ctx, s.logger).Warn("publish event",
				slog.String("event_type", EventOrderPlaced),
				slog.String("error", err.Error()),
			)
		}
	}

	return order, nil
}

// Get returns one of the actor's orders. Admins may read any order.
func (s *OrderService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanMutate(order.UserID) {
		return nil, apperrors.NotFound("order", id)
	}

	return order, nil
}

// History returns the actor's orders, newest first.
func (s *OrderService) History(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to view your orders")
	}
	return s.orders.ListByUser(ctx, actor.UserID)
}
