package models

import "time"

// Order mirrors a row of the orders table.
type Order struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	RestaurantID int       `json:"restaurant_id"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderLine is one dish line of an order, as requested by the user.
// Dishes are referenced by name; prices are resolved from the menu at
// placement time.
type OrderLine struct {
	DishName string `json:"dishname"`
	Quantity int    `json:"quantity"`
}

// OrderItem is a persisted order line joined with its menu item.
type OrderItem struct {
	MenuID   int     `json:"menu_id"`
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderSummary is an order together with its item lines.
type OrderSummary struct {
	Order
	Items []OrderItem `json:"items"`
}

// OrderReceipt is returned when an order is placed.
type OrderReceipt struct {
	OrderID    int     `json:"orderId"`
	TotalPrice float64 `json:"total"`
}

// SalesSummary aggregates today's orders for a restaurant.
type SalesSummary struct {
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}
