package dineinRepo

import (
	"context"
	"database/sql"
	"fmt"

	"dinebot/models"
)

// PostgresDineinRepo implements DineinRepository over Postgres.
type PostgresDineinRepo struct {
	db *sql.DB
}

// NewPostgresDineinRepo returns a dine-in repository backed by db.
func NewPostgresDineinRepo(db *sql.DB) *PostgresDineinRepo {
	return &PostgresDineinRepo{db: db}
}

// BookTable persists a booking and returns the stored record.
func (r *PostgresDineinRepo) BookTable(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var b models.Booking
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO dinein_bookings (user_id, restaurant_id, booking_date, booking_time, people_count)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, restaurant_id, booking_date, booking_time, people_count, COALESCE(status, 'pending')`,
		req.UserID, req.RestaurantID, req.BookingDate, req.BookingTime, req.PeopleCount,
	).Scan(&b.ID, &b.UserID, &b.RestaurantID, &b.BookingDate, &b.BookingTime, &b.PeopleCount, &b.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to book table: %w", err)
	}
	return &b, nil
}

// GetBookingByID returns a booking joined with its restaurant name, or
// nil when the booking does not exist.
func (r *PostgresDineinRepo) GetBookingByID(ctx context.Context, id int) (*models.Booking, error) {
	var b models.Booking
	err := r.db.QueryRowContext(ctx,
		`SELECT b.id, b.user_id, b.restaurant_id, b.booking_date, b.booking_time, b.people_count,
		        COALESCE(b.status, 'pending'), r.name
		 FROM dinein_bookings b
		 JOIN restaurants r ON r.id = b.restaurant_id
		 WHERE b.id = $1`,
		id,
	).Scan(&b.ID, &b.UserID, &b.RestaurantID, &b.BookingDate, &b.BookingTime, &b.PeopleCount, &b.Status, &b.RestaurantName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return &b, nil
}

func (r *PostgresDineinRepo) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RestaurantID, &b.BookingDate, &b.BookingTime,
			&b.PeopleCount, &b.Status, &b.RestaurantName); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PostgresDineinRepo) GetUserBookings(ctx context.Context, userID int) ([]models.Booking, error) {
	return r.queryBookings(ctx,
		`SELECT b.id, b.user_id, b.restaurant_id, b.booking_date, b.booking_time, b.people_count,
		        COALESCE(b.status, 'pending'), r.name
		 FROM dinein_bookings b
		 JOIN restaurants r ON r.id = b.restaurant_id
		 WHERE b.user_id = $1
		 ORDER BY booking_date DESC, booking_time DESC`, userID)
}

func (r *PostgresDineinRepo) CancelBooking(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE dinein_bookings SET status = 'cancelled' WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to cancel booking %d: %w", id, err)
	}
	return nil
}

func (r *PostgresDineinRepo) ConfirmBooking(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE dinein_bookings SET status = 'confirmed' WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to confirm booking %d: %w", id, err)
	}
	return nil
}

func (r *PostgresDineinRepo) GetRestaurantBookings(ctx context.Context, restaurantID int) ([]models.Booking, error) {
	return r.queryBookings(ctx,
		`SELECT b.id, b.user_id, b.restaurant_id, b.booking_date, b.booking_time, b.people_count,
		        COALESCE(b.status, 'pending'), r.name
		 FROM dinein_bookings b
		 JOIN restaurants r ON r.id = b.restaurant_id
		 WHERE b.restaurant_id = $1
		 ORDER BY booking_date DESC, booking_time DESC`, restaurantID)
}

// allSlots assumes hourly seatings between 11am and 10pm.
var allSlots = []string{
	"11:00", "12:00", "13:00", "14:00", "15:00",
	"16:00", "17:00", "18:00", "19:00", "20:00", "21:00", "22:00",
}

// GetAvailableTimeSlots lists the hourly slots not yet booked at a
// restaurant on a date.
func (r *PostgresDineinRepo) GetAvailableTimeSlots(ctx context.Context, restaurantID int, bookingDate string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT booking_time FROM dinein_bookings WHERE restaurant_id = $1 AND booking_date = $2`,
		restaurantID, bookingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked slots: %w", err)
	}
	defer rows.Close()

	booked := make(map[string]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan booked slot: %w", err)
		}
		if len(t) >= 5 {
			booked[t[:5]] = true // trim seconds
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var available []string
	for _, s := range allSlots {
		if !booked[s] {
			available = append(available, s)
		}
	}
	return available, nil
}
