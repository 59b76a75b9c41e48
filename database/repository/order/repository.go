package orderRepo

import (
	"context"
	"errors"

	"dinebot/models"
)

// ErrDishNotFound is returned when an ordered dish is not on the
// restaurant's menu.
var ErrDishNotFound = errors.New("dish not on menu")

// ErrNotCancellable is returned when an order is already delivered or
// cancelled.
var ErrNotCancellable = errors.New("order cannot be cancelled")

// OrderRepository defines methods for order data access.
type OrderRepository interface {
	// PlaceOrder persists an order with its lines; dishes are resolved
	// by name against the restaurant's menu.
	PlaceOrder(ctx context.Context, userID, restaurantID int, items []models.OrderLine) (*models.OrderReceipt, error)
	// TrackOrder returns an order with its items, or nil when absent.
	TrackOrder(ctx context.Context, orderID int) (*models.OrderSummary, error)
	// CancelOrder marks an order cancelled unless delivered/cancelled.
	CancelOrder(ctx context.Context, orderID int) error
	UpdateStatus(ctx context.Context, orderID int, status string) error
	GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	GetOrdersByRestaurant(ctx context.Context, restaurantID int) ([]models.Order, error)
	// GetSalesSummary aggregates today's orders for a restaurant.
	GetSalesSummary(ctx context.Context, restaurantID int) (*models.SalesSummary, error)
}
