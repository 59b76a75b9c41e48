package userRepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dinebot/models"
)

// PostgresUserRepo implements UserRepository over Postgres.
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo returns a user repository backed by db.
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) Create(ctx context.Context, name, phone, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, phone, email) VALUES ($1,$2,$3) RETURNING id, name, phone, email`,
		name, phone, email,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.Email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) GetByPhoneOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM users WHERE phone = $1 OR email = $1 LIMIT 1`, identifier,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.Email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %q: %w", identifier, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", identifier, err)
	}
	return &u, nil
}

// Update builds a dynamic SET clause from the provided fields only.
func (r *PostgresUserRepo) Update(ctx context.Context, id int, update models.UserUpdate) (*models.User, error) {
	var sets []string
	var args []any

	add := func(column string, value string) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING id, name, phone, email`,
		strings.Join(sets, ", "), len(args))

	var u models.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Phone, &u.Email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

func (r *PostgresUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, email FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepo) GetOrderHistory(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.user_id, o.restaurant_id, o.total_amount, o.status, o.created_at
		 FROM orders o
		 JOIN restaurants r ON o.restaurant_id = r.id
		 WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order history: %w", err)
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

// GetChatbotProfile returns the user plus their latest three orders.
func (r *PostgresUserRepo) GetChatbotProfile(ctx context.Context, userID int) (*models.ChatbotProfile, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := r.GetOrderHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) > 3 {
		orders = orders[:3]
	}
	return &models.ChatbotProfile{User: user, RecentOrders: orders}, nil
}
