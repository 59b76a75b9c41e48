package models

// User mirrors a row of the users table.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// UserUpdate carries the optional fields of a profile update.
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ChatbotProfile is the chatbot-friendly view of a user: the profile
// plus their most recent orders.
type ChatbotProfile struct {
	User         *User   `json:"user"`
	RecentOrders []Order `json:"recent_orders"`
}
