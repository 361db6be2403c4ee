package repositories

import (
	"context"
	"fmt"

	"github.com/vitokorn/buy-me-a-gift/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortableProductColumns whitelists the columns a ProductFilter may order by.
var sortableProductColumns = map[string]bool{
	"id":           true,
	"price":        true,
	"rank":         true,
	"created_time": true,
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves the products matching filter.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.PriceGT != nil {
		query = query.Where("price > ?", *filter.PriceGT)
	}
	if filter.PriceLT != nil {
		query = query.Where("price < ?", *filter.PriceLT)
	}
	for _, field := range filter.OrderBy {
		if !sortableProductColumns[field.Column] {
			return nil, fmt.Errorf("cannot order products by %q", field.Column)
		}
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: field.Column}, Desc: field.Desc})
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, translateError(err))
	}
	return &product, nil
}

// GetByIDs retrieves every existing product among ids.
func (r *GORMProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translateError(err))
	}
	return nil
}

// Update writes every editable column of an existing product, zero values included.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Select("name", "price", "rank", "category_id").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.WishlistProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete wishlist entries of product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
