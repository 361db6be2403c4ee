package repositories

import (
	"context"
	"fmt"

	"github.com/vitokorn/buy-me-a-gift/internal/models"

	"gorm.io/gorm"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// Create checks for an existing wishlist and inserts the new one in the same
// transaction. The unique index on user_id catches concurrent inserts.
func (r *GORMWishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Wishlist{}).Where("user_id = ?", wishlist.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEntry
		}
		return tx.Create(wishlist).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create wishlist for user %d: %w", wishlist.UserID, translateError(err))
	}
	return nil
}

// ExistsForUser reports whether the user already owns a wishlist.
func (r *GORMWishlistRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Wishlist{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check wishlist of user %d: %w", userID, err)
	}
	return count > 0, nil
}

// GetByID retrieves a wishlist by its ID.
func (r *GORMWishlistRepository) GetByID(ctx context.Context, id uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&wishlist, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist by ID %d: %w", id, translateError(err))
	}
	return &wishlist, nil
}

// GetByUserID retrieves the wishlist owned by userID.
func (r *GORMWishlistRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Preload("User").
		First(&wishlist, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist of user %d: %w", userID, translateError(err))
	}
	return &wishlist, nil
}

// Delete removes a wishlist and its product associations.
func (r *GORMWishlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&models.WishlistProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of wishlist %d: %w", id, err)
		}
		res := tx.Delete(&models.Wishlist{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete wishlist: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("wishlist with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
