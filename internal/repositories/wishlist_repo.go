package repositories

import (
	"context"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
)

// WishlistRepository defines the interface for wishlist data access.
// Returned wishlists have Items loaded in position order.
type WishlistRepository interface {
	// Create inserts the wishlist and its items. It returns ErrDuplicateEntry
	// when the owner already has a wishlist.
	Create(ctx context.Context, wishlist *models.Wishlist) error
	ExistsForUser(ctx context.Context, userID uint) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Wishlist, error)
	// GetByUserID also loads the owner.
	GetByUserID(ctx context.Context, userID uint) (*models.Wishlist, error)
	Delete(ctx context.Context, id uint) error
}
