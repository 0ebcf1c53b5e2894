package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
	"github.com/cristiarazvan/gogogo/pkg/logger"
)

// RatingService records restaurant star ratings.
type RatingService struct {
	ratings     repository.RatingRepository
	restaurants repository.RestaurantRepository
	cache       *ListingCache
	logger      *slog.Logger
}

// NewRatingService creates a RatingService. cache may be nil.
func NewRatingService(
	ratings repository.RatingRepository,
	restaurants repository.RestaurantRepository,
	cache *ListingCache,
	logger *slog.Logger,
) *RatingService {
	return &RatingService{
		ratings:     ratings,
		restaurants: restaurants,
		cache:       cache,
		logger:      logger,
	}
}

// Rate records the actor's score for a restaurant. Submitting again
// overwrites the previous score, so a user never holds two ratings for the
// same restaurant even under concurrent submissions.
func (s *RatingService) Rate(ctx context.Context, actor domain.Actor, restaurantID string, score int) (*domain.Rating, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to rate a restaurant")
	}

	if score < domain.MinRatingScore || score > domain.MaxRatingScore {
		return nil, apperrors.InvalidInput("score must be between 1 and 5")
	}

	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ID:           uuid.New().String(),
		UserID:       actor.UserID,
		RestaurantID: restaurantID,
		Score:        score,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.WithContext(ctx, s.logger).Warn("invalidate listing cache", slog.String("error", err.Error()))
		}
	}

	return rating, nil
}

// MyRating returns the actor's existing score for a restaurant, or nil
// when they have not rated it.
func (s *RatingService) MyRating(ctx context.Context, actor domain.Actor, restaurantID string) (*domain.Rating, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to view your rating")
	}

	rating, err := s.ratings.GetByUser(ctx, actor.UserID, restaurantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return rating, nil
}
