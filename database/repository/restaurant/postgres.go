package restaurantRepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dinebot/models"
)

// PostgresRestaurantRepo implements RestaurantRepository over Postgres.
type PostgresRestaurantRepo struct {
	db *sql.DB
}

// NewPostgresRestaurantRepo returns a restaurant repository backed by db.
func NewPostgresRestaurantRepo(db *sql.DB) *PostgresRestaurantRepo {
	return &PostgresRestaurantRepo{db: db}
}

const restaurantColumns = `id, name, url, cuisines, area, timing, full_address, phone_number,
	is_home_delivery, take_away, is_indoor_seating, is_veg_only,
	dinner_rating, dinner_reviews, delivery_rating, delivery_reviews,
	known_for, popular_dishes, people_known_for, average_cost`

func scanRestaurant(row interface{ Scan(...any) error }) (*models.Restaurant, error) {
	var r models.Restaurant
	err := row.Scan(
		&r.ID, &r.Name, &r.URL, &r.Cuisines, &r.Area, &r.Timing, &r.FullAddress, &r.PhoneNumber,
		&r.IsHomeDelivery, &r.TakeAway, &r.IsIndoorSeating, &r.IsVegOnly,
		&r.DinnerRating, &r.DinnerReviews, &r.DeliveryRating, &r.DeliveryReviews,
		&r.KnownFor, &r.PopularDishes, &r.PeopleKnownFor, &r.AverageCost,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PostgresRestaurantRepo) queryRestaurants(ctx context.Context, query string, args ...any) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var list []models.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant row: %w", err)
		}
		list = append(list, *rest)
	}
	return list, rows.Err()
}

// GetAll retrieves every restaurant.
func (r *PostgresRestaurantRepo) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	return r.queryRestaurants(ctx, `SELECT `+restaurantColumns+` FROM restaurants`)
}

// GetByID retrieves a single restaurant by ID.
func (r *PostgresRestaurantRepo) GetByID(ctx context.Context, id int) (*models.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	rest, err := scanRestaurant(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant %d: %w", id, err)
	}
	return rest, nil
}

// SearchByNameAndArea resolves a single restaurant ID from a partial
// name and area match.
func (r *PostgresRestaurantRepo) SearchByNameAndArea(ctx context.Context, name, area string) (int, error) {
	nm := strings.TrimSpace(name)
	ar := strings.TrimSpace(area)
	if nm == "" || ar == "" {
		return 0, fmt.Errorf("name and area required: %w", ErrNotFound)
	}

	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM restaurants WHERE name ILIKE $1 AND area ILIKE $2 LIMIT 1`,
		"%"+nm+"%", "%"+ar+", Bangalore%",
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no restaurant for %q in %q: %w", nm, ar, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to search restaurant by name and area: %w", err)
	}
	return id, nil
}

// FilterAdvanced searches restaurants by cuisine, area, rating, cost
// and capability flags, best delivery rating first.
func (r *PostgresRestaurantRepo) FilterAdvanced(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	var clauses []string
	var args []any

	if filter.Cuisine != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Cuisine)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(cuisines) LIKE LOWER($%d)", len(args)))
	}
	if filter.Area != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Area)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(area) LIKE LOWER($%d)", len(args)))
	}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		clauses = append(clauses, fmt.Sprintf("(delivery_rating + dinner_rating)/2 >= $%d", len(args)))
	}
	if filter.MaxCost != nil {
		args = append(args, *filter.MaxCost)
		clauses = append(clauses, fmt.Sprintf("average_cost <= $%d", len(args)))
	}
	if filter.VegOnly {
		clauses = append(clauses, "is_veg_only = true")
	}
	if filter.DineInOnly {
		clauses = append(clauses, "is_indoor_seating = true")
	}
	if filter.HomeDelivery {
		clauses = append(clauses, "is_home_delivery = true")
	}

	query := `SELECT ` + restaurantColumns + ` FROM restaurants`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY delivery_rating DESC"

	return r.queryRestaurants(ctx, query, args...)
}
