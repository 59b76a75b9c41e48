package dineinRepo

import (
	"context"

	"dinebot/models"
)

// DineinRepository defines methods for dine-in booking data access.
type DineinRepository interface {
	// BookTable persists a booking and returns the stored record.
	BookTable(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	// GetBookingByID returns a booking, or nil when absent.
	GetBookingByID(ctx context.Context, id int) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID int) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id int) error
	ConfirmBooking(ctx context.Context, id int) error
	GetRestaurantBookings(ctx context.Context, restaurantID int) ([]models.Booking, error)
	// GetAvailableTimeSlots lists free hourly slots (11:00-22:00) for a
	// restaurant on a date.
	GetAvailableTimeSlots(ctx context.Context, restaurantID int, bookingDate string) ([]string, error)
}
