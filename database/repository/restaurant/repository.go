package restaurantRepo

import (
	"context"
	"errors"

	"dinebot/models"
)

// ErrNotFound is returned when no restaurant matches the query.
var ErrNotFound = errors.New("restaurant not found")

// RestaurantRepository defines methods for restaurant data access.
type RestaurantRepository interface {
	// GetAll retrieves every restaurant.
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	// GetByID retrieves a restaurant by its unique ID.
	GetByID(ctx context.Context, id int) (*models.Restaurant, error)
	// SearchByNameAndArea resolves a restaurant ID from a partial name and area.
	SearchByNameAndArea(ctx context.Context, name, area string) (int, error)
	// FilterAdvanced searches restaurants by the given criteria.
	FilterAdvanced(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error)
}
