package userRepo

import (
	"context"
	"errors"

	"dinebot/models"
)

// ErrNotFound is returned when no user matches the query.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	Create(ctx context.Context, name, phone, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	// GetByPhoneOrEmail looks a user up by either identifier.
	GetByPhoneOrEmail(ctx context.Context, identifier string) (*models.User, error)
	Update(ctx context.Context, id int, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]models.User, error)
	// GetOrderHistory lists a user's orders, newest first.
	GetOrderHistory(ctx context.Context, userID int) ([]models.Order, error)
	// GetChatbotProfile returns the user plus their latest orders.
	GetChatbotProfile(ctx context.Context, userID int) (*models.ChatbotProfile, error)
}
