package service

import (
	"context"
	"log/slog"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
	"github.com/cristiarazvan/gogogo/pkg/logger"
)

// Event types published on approval decisions.
const (
	EventRestaurantApproved = "restaurant.approved"
	EventRestaurantRejected = "restaurant.rejected"
	EventProductApproved    = "product.approved"
	EventProductRejected    = "product.rejected"
)

// EventProducer publishes domain events for downstream consumers.
type EventProducer interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// PendingReview bundles everything awaiting an admin decision.
type PendingReview struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Products    []domain.Product    `json:"products"`
}

// ApprovalService runs the moderation workflow for restaurants and
// products. Every decision requires the admin role; approval is idempotent
// and rejection is a hard delete.
type ApprovalService struct {
	restaurants repository.RestaurantRepository
	products    repository.ProductRepository
	events      EventProducer
	cache       *ListingCache
	logger      *slog.Logger
}

// NewApprovalService creates an ApprovalService. cache may be nil.
func NewApprovalService(
	restaurants repository.RestaurantRepository,
	products repository.ProductRepository,
	events EventProducer,
	cache *ListingCache,
	logger *slog.Logger,
) *ApprovalService {
	return &ApprovalService{
		restaurants: restaurants,
		products:    products,
		events:      events,
		cache:       cache,
		logger:      logger,
	}
}

// PendingReview returns all restaurants and products awaiting review,
// oldest first.
func (s *ApprovalService) PendingReview(ctx context.Context, actor domain.Actor) (*PendingReview, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can review submissions")
	}

	restaurants, err := s.restaurants.ListAwaitingReview(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListAwaitingReview(ctx)
	if err != nil {
		return nil, err
	}

	return &PendingReview{Restaurants: restaurants, Products: products}, nil
}

// ApproveRestaurant moves a restaurant to the approved state. Approving an
// already approved restaurant succeeds without touching anything.
func (s *ApprovalService) ApproveRestaurant(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can approve restaurants")
	}

	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return err
	}

	next, ok := domain.NextRestaurantApproval(restaurant.Approval, domain.DecisionApprove)
	if !ok {
		return apperrors.InvalidInput("restaurant cannot be approved from its current state")
	}
	if next == restaurant.Approval {
		return nil
	}

	if !restaurant.ReadyForApproval() {
		return apperrors.InvalidInput("restaurant needs a name and an image before it can be approved")
	}

	if err := s.restaurants.UpdateApproval(ctx, id, next); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, EventRestaurantApproved, map[string]string{"restaurant_id": id, "admin_id": actor.UserID})

	return nil
}

// RejectRestaurant removes a restaurant and everything that depends on it.
// There is no rejected state to come back from.
func (s *ApprovalService) RejectRestaurant(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can reject restaurants")
	}

	if _, err := s.restaurants.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.restaurants.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, EventRestaurantRejected, map[string]string{"restaurant_id": id, "admin_id": actor.UserID})

	return nil
}

// ApproveProduct moves a product to the approved state, idempotently.
func (s *ApprovalService) ApproveProduct(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can approve products")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	next, ok := domain.NextProductApproval(product.Approval, domain.DecisionApprove)
	if !ok {
		return apperrors.InvalidInput("product cannot be approved from its current state")
	}
	if next == product.Approval {
		return nil
	}

	if err := s.products.UpdateApproval(ctx, id, next); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, EventProductApproved, map[string]string{"product_id": id, "admin_id": actor.UserID})

	return nil
}

// RejectProduct hard-deletes a product.
func (s *ApprovalService) RejectProduct(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can reject products")
	}

	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, EventProductRejected, map[string]string{"product_id": id, "admin_id": actor.UserID})

	return nil
}

func (s *ApprovalService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WithContext(ctx, s.logger).Warn("invalidate listing cache", slog.String("error", err.Error()))
	}
}

// publish sends a moderation event. Failures are logged and do not undo
// the decision.
func (s *ApprovalService) publish(ctx context.Context, eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		logger.WithContext(ctx, s.logger).Warn("publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
