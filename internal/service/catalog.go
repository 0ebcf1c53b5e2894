package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
	"github.com/cristiarazvan/gogogo/pkg/logger"
	"github.com/cristiarazvan/gogogo/pkg/slug"
)

// RestaurantInput carries the writable restaurant fields.
type RestaurantInput struct {
	Name     string
	ImageURL string
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Title        string
	Description  string
	Price        float64
	Stock        int
	ImageURL     string
	CategoryID   *string
	RestaurantID string
}

// CatalogService manages restaurants, products, and categories. Mutations
// are guarded by the ownership predicate and invalidate the browse listing
// cache.
type CatalogService struct {
	restaurants repository.RestaurantRepository
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	cache       *ListingCache
	logger      *slog.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil.
func NewCatalogService(
	restaurants repository.RestaurantRepository,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	cache *ListingCache,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		restaurants: restaurants,
		products:    products,
		categories:  categories,
		cache:       cache,
		logger:      logger,
	}
}

// CreateRestaurant registers a new restaurant owned by the actor. The
// initial approval state depends on the actor's role: admin submissions go
// live immediately, everyone else waits for review.
func (s *CatalogService) CreateRestaurant(ctx context.Context, actor domain.Actor, in RestaurantInput) (*domain.Restaurant, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.Unauthorized("sign in to create a restaurant")
	}

	now := time.Now().UTC()
	restaurant := &domain.Restaurant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      slug.Generate(in.Name),
		ImageURL:  in.ImageURL,
		OwnerID:   actor.UserID,
		Approval:  domain.InitialRestaurantApproval(actor.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// A listing cannot go live without an image, even for admins; it waits
	// in review until one is set.
	if restaurant.Approval == domain.RestaurantApproved && !restaurant.ReadyForApproval() {
		restaurant.Approval = domain.RestaurantPending
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	logger.WithContext(ctx, s.logger).Info("restaurant created",
		slog.String("restaurant_id", restaurant.ID),
		slog.String("approval", string(restaurant.Approval)),
	)

	return restaurant, nil
}

// GetRestaurant returns a restaurant with its products. Restaurants that
// are not yet approved are visible only to their owner and admins; for
// anyone else they do not exist.
func (s *CatalogService) GetRestaurant(ctx context.Context, actor domain.Actor, id string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanSee(*restaurant) {
		return nil, apperrors.NotFound("restaurant", id)
	}

	products, err := s.products.ListByRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant.Products = products

	return restaurant, nil
}

// UpdateRestaurant modifies a restaurant's name and image.
func (s *CatalogService) UpdateRestaurant(ctx context.Context, actor domain.Actor, id string, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanMutate(restaurant.OwnerID) {
		return nil, apperrors.Forbidden("you do not own this restaurant")
	}

	restaurant.Name = in.Name
	restaurant.Slug = slug.Generate(in.Name)
	if in.ImageURL != "" {
		restaurant.ImageURL = in.ImageURL
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	return restaurant, nil
}

// DeleteRestaurant removes a restaurant and everything that depends on it.
func (s *CatalogService) DeleteRestaurant(ctx context.Context, actor domain.Actor, id string) error {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanMutate(restaurant.OwnerID) {
		return apperrors.Forbidden("you do not own this restaurant")
	}

	if err := s.restaurants.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

// CreateProduct adds a product to a restaurant the actor owns.
func (s *CatalogService) CreateProduct(ctx context.Context, actor domain.Actor, in ProductInput) (*domain.Product, error) {
	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	if !actor.CanMutate(restaurant.OwnerID) {
		return nil, apperrors.Forbidden("you do not own this restaurant")
	}

	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Stock:        in.Stock,
		ImageURL:     in.ImageURL,
		CategoryID:   in.CategoryID,
		RestaurantID: in.RestaurantID,
		Approval:     domain.InitialProductApproval(actor.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	return product, nil
}

// GetProduct returns a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// UpdateProduct modifies a product on a restaurant the actor owns.
func (s *CatalogService) UpdateProduct(ctx context.Context, actor domain.Actor, id string, in ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.restaurants.GetByID(ctx, product.RestaurantID)
	if err != nil {
		return nil, err
	}

	if !actor.CanMutate(restaurant.OwnerID) {
		return nil, apperrors.Forbidden("you do not own this product")
	}

	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	product.Title = in.Title
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.CategoryID = in.CategoryID
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	return product, nil
}

// DeleteProduct removes a product from a restaurant the actor owns.
func (s *CatalogService) DeleteProduct(ctx context.Context, actor domain.Actor, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	restaurant, err := s.restaurants.GetByID(ctx, product.RestaurantID)
	if err != nil {
		return err
	}

	if !actor.CanMutate(restaurant.OwnerID) {
		return apperrors.Forbidden("you do not own this product")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

// CreateCategory adds a category. Admin only.
func (s *CatalogService) CreateCategory(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can manage categories")
	}

	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Generate(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes a category. Admin only.
func (s *CatalogService) DeleteCategory(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can manage categories")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

func (s *CatalogService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WithContext(ctx, s.logger).Warn("invalidate listing cache", slog.String("error", err.Error()))
	}
}
