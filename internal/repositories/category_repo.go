package repositories

import (
	"context"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
)

// CategoryRepository defines the interface for product category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.ProductCategory, error)
	GetByID(ctx context.Context, id uint) (*models.ProductCategory, error)
	Create(ctx context.Context, category *models.ProductCategory) error
	// Delete removes the category together with its products and their
	// wishlist associations.
	Delete(ctx context.Context, id uint) error
}
