package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// ReviewService manages product reviews. Unlike ratings, a user may post
// any number of reviews on the same product.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Post adds a review to a product.
func (s *ReviewService) Post(ctx context.Context, actor domain.Actor, productID, text string, rating int) (*domain.Review, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to review a product")
	}

	if rating < domain.MinReviewRating || rating > domain.MaxReviewRating {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if text == "" {
		return nil, apperrors.InvalidInput("review text is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    actor.UserID,
		Text:      text,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// ListForProduct returns all reviews of a product, newest first.
func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, productID, 0)
}
