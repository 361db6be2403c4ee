package repositories

import (
	"context"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}
