package menuRepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dinebot/models"
)

// PostgresMenuRepo implements MenuRepository over Postgres.
type PostgresMenuRepo struct {
	db *sql.DB
}

// NewPostgresMenuRepo returns a menu repository backed by db.
func NewPostgresMenuRepo(db *sql.DB) *PostgresMenuRepo {
	return &PostgresMenuRepo{db: db}
}

const menuColumns = `id, restaurant_id, item_name, price, is_veg, category`

func (r *PostgresMenuRepo) queryItems(ctx context.Context, query string, args ...any) ([]models.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.ItemName, &m.Price, &m.IsVeg, &m.Category); err != nil {
			return nil, fmt.Errorf("failed to scan menu row: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *PostgresMenuRepo) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuColumns+` FROM menus`)
}

func (r *PostgresMenuRepo) GetByID(ctx context.Context, id int) (*models.MenuItem, error) {
	var m models.MenuItem
	err := r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id).
		Scan(&m.ID, &m.RestaurantID, &m.ItemName, &m.Price, &m.IsVeg, &m.Category)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("menu %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu %d: %w", id, err)
	}
	return &m, nil
}

func (r *PostgresMenuRepo) GetByRestaurantID(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuColumns+` FROM menus WHERE restaurant_id = $1`, restaurantID)
}

func (r *PostgresMenuRepo) GetVegItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuColumns+` FROM menus WHERE restaurant_id = $1 AND is_veg = true`, restaurantID)
}

func (r *PostgresMenuRepo) GetNonVegItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuColumns+` FROM menus WHERE restaurant_id = $1 AND is_veg = false`, restaurantID)
}

func (r *PostgresMenuRepo) GetByCategory(ctx context.Context, restaurantID int, category string) ([]models.MenuItem, error) {
	return r.queryItems(ctx,
		`SELECT `+menuColumns+` FROM menus WHERE restaurant_id = $1 AND LOWER(category) = LOWER($2)`,
		restaurantID, strings.TrimSpace(category))
}

func (r *PostgresMenuRepo) SearchItemsByName(ctx context.Context, restaurantID int, keyword string) ([]models.MenuItem, error) {
	return r.queryItems(ctx,
		`SELECT `+menuColumns+` FROM menus WHERE restaurant_id = $1 AND LOWER(item_name) LIKE LOWER($2)`,
		restaurantID, "%"+strings.TrimSpace(keyword)+"%")
}

func (r *PostgresMenuRepo) GetItemsByPriceRange(ctx context.Context, restaurantID int, min, max float64) ([]models.MenuItem, error) {
	return r.queryItems(ctx,
		`SELECT `+menuColumns+` FROM menus WHERE restaurant_id = $1 AND price BETWEEN $2 AND $3`,
		restaurantID, min, max)
}

func (r *PostgresMenuRepo) GetCategoriesByRestaurant(ctx context.Context, restaurantID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM menus WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresMenuRepo) AddMenuItem(ctx context.Context, item models.NewMenuItem) (*models.MenuItem, error) {
	var m models.MenuItem
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO menus (restaurant_id, item_name, price, is_veg, category)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING `+menuColumns,
		item.RestaurantID, strings.TrimSpace(item.ItemName), item.Price, item.IsVeg, strings.TrimSpace(item.Category),
	).Scan(&m.ID, &m.RestaurantID, &m.ItemName, &m.Price, &m.IsVeg, &m.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to add menu item: %w", err)
	}
	return &m, nil
}
