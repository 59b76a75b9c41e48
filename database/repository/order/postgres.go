package orderRepo

import (
	"context"
	"database/sql"
	"fmt"

	"dinebot/models"
)

// PostgresOrderRepo implements OrderRepository over Postgres.
type PostgresOrderRepo struct {
	db *sql.DB
}

// NewPostgresOrderRepo returns an order repository backed by db.
func NewPostgresOrderRepo(db *sql.DB) *PostgresOrderRepo {
	return &PostgresOrderRepo{db: db}
}

// PlaceOrder resolves each dish by name against the restaurant's menu,
// computes the total and writes the order with its lines in one
// transaction.
func (r *PostgresOrderRepo) PlaceOrder(ctx context.Context, userID, restaurantID int, items []models.OrderLine) (*models.OrderReceipt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	type resolved struct {
		menuID   int
		price    float64
		quantity int
	}
	var lines []resolved
	var total float64

	for _, it := range items {
		var menuID int
		var price float64
		err := tx.QueryRowContext(ctx,
			`SELECT id, price FROM menus WHERE restaurant_id = $1 AND LOWER(item_name) = LOWER($2) LIMIT 1`,
			restaurantID, it.DishName,
		).Scan(&menuID, &price)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%q: %w", it.DishName, ErrDishNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dish %q: %w", it.DishName, err)
		}
		lines = append(lines, resolved{menuID: menuID, price: price, quantity: it.Quantity})
		total += price * float64(it.Quantity)
	}

	var orderID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, restaurant_id, total_amount, status, created_at)
		 VALUES ($1, $2, $3, 'pending', NOW()) RETURNING id`,
		userID, restaurantID, total,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, ln := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, menu_id, quantity, price) VALUES ($1, $2, $3, $4)`,
			orderID, ln.menuID, ln.quantity, ln.price,
		); err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return &models.OrderReceipt{OrderID: orderID, TotalPrice: total}, nil
}

// TrackOrder returns an order with its joined items, or nil when the
// order does not exist.
func (r *PostgresOrderRepo) TrackOrder(ctx context.Context, orderID int) (*models.OrderSummary, error) {
	var o models.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, restaurant_id, total_amount, status, created_at FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.menu_id, m.item_name, oi.quantity, oi.price
		 FROM order_items oi
		 JOIN menus m ON m.id = oi.menu_id
		 WHERE oi.order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	summary := &models.OrderSummary{Order: o}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.MenuID, &it.ItemName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		summary.Items = append(summary.Items, it)
	}
	return summary, rows.Err()
}

// CancelOrder marks an order cancelled. Delivered or already cancelled
// orders are refused.
func (r *PostgresOrderRepo) CancelOrder(ctx context.Context, orderID int) error {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("order %d: %w", orderID, ErrNotCancellable)
	}
	if err != nil {
		return fmt.Errorf("failed to get order %d status: %w", orderID, err)
	}
	if status == "delivered" || status == "cancelled" {
		return fmt.Errorf("order %d is %s: %w", orderID, status, ErrNotCancellable)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE orders SET status = 'cancelled' WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}
	return nil
}

// UpdateStatus sets a new order status (admin/restaurant use).
func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, orderID int, status string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID); err != nil {
		return fmt.Errorf("failed to update order %d status: %w", orderID, err)
	}
	return nil
}

func (r *PostgresOrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresOrderRepo) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, user_id, restaurant_id, total_amount, status, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresOrderRepo) GetOrdersByRestaurant(ctx context.Context, restaurantID int) ([]models.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, user_id, restaurant_id, total_amount, status, created_at
		 FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC`, restaurantID)
}

// GetSalesSummary aggregates today's order count and revenue.
func (r *PostgresOrderRepo) GetSalesSummary(ctx context.Context, restaurantID int) (*models.SalesSummary, error) {
	var s models.SalesSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		 FROM orders
		 WHERE restaurant_id = $1 AND created_at::date = CURRENT_DATE`,
		restaurantID,
	).Scan(&s.TotalOrders, &s.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}
	return &s, nil
}
