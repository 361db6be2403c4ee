package repositories

import (
	"context"
	"fmt"

	"github.com/vitokorn/buy-me-a-gift/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories ordered by id.
func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, translateError(err))
	}
	return &category, nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.ProductCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translateError(err))
	}
	return nil
}

// Delete deletes a category and everything that depends on it in one transaction.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productIDs := tx.Model(&models.Product{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.WishlistProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete wishlist entries of category %d: %w", id, err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete products of category %d: %w", id, err)
		}
		res := tx.Delete(&models.ProductCategory{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
