package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	"github.com/cristiarazvan/gogogo/pkg/logger"
)

// SortKey selects the ordering of the browse listing.
type SortKey string

const (
	// SortDefault applies the role-aware ordering: the viewer's own
	// restaurants first, then approved ones, then by name.
	SortDefault SortKey = ""

	SortRatingDesc SortKey = "rating_desc"
	SortRatingAsc  SortKey = "rating_asc"
	SortNameAsc    SortKey = "name_asc"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
)

// ParseSortKey maps a query parameter to a sort key. Unrecognized values
// fall back to name ordering rather than erroring.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDefault, SortRatingDesc, SortRatingAsc, SortNameAsc, SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return SortNameAsc
	}
}

// BrowseQuery holds the search, filter, and sort criteria for a listing.
type BrowseQuery struct {
	// Search keeps restaurants whose name, or any product title or
	// description, contains it as a case-sensitive substring.
	Search string

	// Categories keeps restaurants that have at least one product in any
	// of the named categories.
	Categories []string

	Sort SortKey
}

// DiscoveryService produces the restaurant browse listing. Restaurants are
// loaded with products and rating aggregates and then filtered and ordered
// in memory, so every sort key sees the same base set.
type DiscoveryService struct {
	restaurants repository.RestaurantRepository
	categories  repository.CategoryRepository
	cache       *ListingCache
	logger      *slog.Logger
}

// NewDiscoveryService creates a DiscoveryService. cache may be nil.
func NewDiscoveryService(
	restaurants repository.RestaurantRepository,
	categories repository.CategoryRepository,
	cache *ListingCache,
	logger *slog.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		restaurants: restaurants,
		categories:  categories,
		cache:       cache,
		logger:      logger,
	}
}

// Search returns the ordered browse listing for the given viewer. An empty
// query and empty filter set pass everything through; unapproved
// restaurants are not hidden here but ranked below approved ones by the
// default ordering.
func (s *DiscoveryService) Search(ctx context.Context, viewer domain.Actor, q BrowseQuery) ([]domain.Restaurant, error) {
	restaurants, err := s.loadRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	if q.Search != "" {
		restaurants = filterBySearch(restaurants, q.Search)
	}

	if len(q.Categories) > 0 {
		categoryNames, err := s.categoryNamesByID(ctx)
		if err != nil {
			return nil, err
		}
		restaurants = filterByCategories(restaurants, q.Categories, categoryNames)
	}

	SortRestaurants(restaurants, q.Sort, viewer.UserID)

	return restaurants, nil
}

func (s *DiscoveryService) loadRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	restaurants, err := s.restaurants.ListWithProducts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, restaurants); err != nil {
			logger.WithContext(ctx, s.logger).Warn("cache listing", slog.String("error", err.Error()))
		}
	}

	return restaurants, nil
}

func (s *DiscoveryService) categoryNamesByID(ctx context.Context) (map[string]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// filterBySearch keeps restaurants where the query is a substring of the
// restaurant name or of any product's title or description. Matching is
// case-sensitive.
func filterBySearch(restaurants []domain.Restaurant, query string) []domain.Restaurant {
	matched := make([]domain.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if restaurantMatches(r, query) {
			matched = append(matched, r)
		}
	}
	return matched
}

func restaurantMatches(r domain.Restaurant, query string) bool {
	if strings.Contains(r.Name, query) {
		return true
	}
	for _, p := range r.Products {
		if strings.Contains(p.Title, query) || strings.Contains(p.Description, query) {
			return true
		}
	}
	return false
}

// filterByCategories keeps restaurants with at least one product in any of
// the named categories. Multiple categories are OR'd.
func filterByCategories(restaurants []domain.Restaurant, categories []string, namesByID map[string]string) []domain.Restaurant {
	wanted := make(map[string]struct{}, len(categories))
	for _, name := range categories {
		wanted[name] = struct{}{}
	}

	matched := make([]domain.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		for _, p := range r.Products {
			if p.CategoryID == nil {
				continue
			}
			if _, ok := wanted[namesByID[*p.CategoryID]]; ok {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched
}

// SortRestaurants orders the slice in place. The comparators are pure
// functions of the restaurant and viewer ID, so every ordering rule is
// testable without a data store.
func SortRestaurants(restaurants []domain.Restaurant, key SortKey, viewerID string) {
	less := lessFunc(key, viewerID)
	sort.SliceStable(restaurants, func(i, j int) bool {
		return less(restaurants[i], restaurants[j])
	})
}

func lessFunc(key SortKey, viewerID string) func(a, b domain.Restaurant) bool {
	switch key {
	case SortRatingDesc:
		return func(a, b domain.Restaurant) bool {
			if RatingScore(a) != RatingScore(b) {
				return RatingScore(a) > RatingScore(b)
			}
			return a.Name < b.Name
		}
	case SortRatingAsc:
		return func(a, b domain.Restaurant) bool {
			if RatingScore(a) != RatingScore(b) {
				return RatingScore(a) < RatingScore(b)
			}
			return a.Name < b.Name
		}
	case SortPriceAsc:
		return func(a, b domain.Restaurant) bool {
			pa, pb := priceAscKey(a), priceAscKey(b)
			if pa != pb {
				return pa < pb
			}
			return a.Name < b.Name
		}
	case SortPriceDesc:
		return func(a, b domain.Restaurant) bool {
			pa, pb := priceDescKey(a), priceDescKey(b)
			if pa != pb {
				return pa > pb
			}
			return a.Name < b.Name
		}
	case SortNameAsc:
		return func(a, b domain.Restaurant) bool {
			return a.Name < b.Name
		}
	default:
		return func(a, b domain.Restaurant) bool {
			ra, rb := DefaultRank(viewerID, a), DefaultRank(viewerID, b)
			if ra != rb {
				return ra < rb
			}
			return a.Name < b.Name
		}
	}
}

// RatingScore is the sort value for rating orderings. A restaurant with no
// ratings scores 0, so it ranks below even a single one-star rating.
func RatingScore(r domain.Restaurant) float64 {
	if r.RatingCount == 0 {
		return 0
	}
	return r.AverageRating
}

// meanPrice averages the restaurant's product prices. ok is false when the
// restaurant has no products.
func meanPrice(r domain.Restaurant) (float64, bool) {
	if len(r.Products) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range r.Products {
		sum += p.Price
	}
	return sum / float64(len(r.Products)), true
}

// priceAscKey treats restaurants without products as infinitely expensive
// so they land at the end of an ascending listing.
func priceAscKey(r domain.Restaurant) float64 {
	mean, ok := meanPrice(r)
	if !ok {
		return math.Inf(1)
	}
	return mean
}

// priceDescKey treats restaurants without products as price 0, which also
// lands them at the end of a descending listing. The two empty-restaurant
// policies are deliberately different; both keep empty restaurants last.
func priceDescKey(r domain.Restaurant) float64 {
	mean, ok := meanPrice(r)
	if !ok {
		return 0
	}
	return mean
}

// DefaultRank is the role-aware default ordering key. A signed-in viewer
// sees their own restaurants first regardless of approval state, then
// approved restaurants, then the rest; anonymous viewers see approved
// restaurants first.
func DefaultRank(viewerID string, r domain.Restaurant) int {
	if viewerID != "" && r.OwnerID == viewerID {
		return 0
	}
	if r.Approval == domain.RestaurantApproved {
		return 1
	}
	return 2
}
