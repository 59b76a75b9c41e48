package menuRepo

import (
	"context"
	"errors"

	"dinebot/models"
)

// ErrNotFound is returned when no menu item matches the query.
var ErrNotFound = errors.New("menu item not found")

// MenuRepository defines methods for menu data access.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id int) (*models.MenuItem, error)
	// GetByRestaurantID retrieves all items on a restaurant's menu.
	GetByRestaurantID(ctx context.Context, restaurantID int) ([]models.MenuItem, error)
	GetVegItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error)
	GetNonVegItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error)
	GetByCategory(ctx context.Context, restaurantID int, category string) ([]models.MenuItem, error)
	SearchItemsByName(ctx context.Context, restaurantID int, keyword string) ([]models.MenuItem, error)
	GetItemsByPriceRange(ctx context.Context, restaurantID int, min, max float64) ([]models.MenuItem, error)
	GetCategoriesByRestaurant(ctx context.Context, restaurantID int) ([]string, error)
	AddMenuItem(ctx context.Context, item models.NewMenuItem) (*models.MenuItem, error)
}
