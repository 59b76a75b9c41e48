package models

// Booking mirrors a row of the dinein_bookings table.
type Booking struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id"`
	RestaurantID   int    `json:"restaurant_id"`
	BookingDate    string `json:"booking_date"` // "YYYY-MM-DD"
	BookingTime    string `json:"booking_time"` // "HH:MM:SS"
	PeopleCount    int    `json:"people_count"`
	Status         string `json:"status"`
	RestaurantName string `json:"restaurant_name,omitempty"` // joined, list views only
}

// BookingRequest is the payload for booking a table.
type BookingRequest struct {
	UserID       int    `json:"user_id" binding:"required"`
	RestaurantID int    `json:"restaurant_id" binding:"required"`
	BookingDate  string `json:"booking_date" binding:"required"`
	BookingTime  string `json:"booking_time" binding:"required"`
	PeopleCount  int    `json:"people_count" binding:"required"`
}

// SlotRequest asks for free slots at a restaurant on a date.
type SlotRequest struct {
	RestaurantID int    `json:"restaurant_id" binding:"required"`
	BookingDate  string `json:"booking_date" binding:"required"`
}
