package repositories

import (
	"context"

	"github.com/vitokorn/buy-me-a-gift/internal/models"

	"github.com/shopspring/decimal"
)

// SortField is one ORDER BY term. Column must be one of the sortable
// product columns.
type SortField struct {
	Column string
	Desc   bool
}

// ProductFilter restricts and orders a product listing. Nil bounds are not applied.
type ProductFilter struct {
	PriceGT *decimal.Decimal
	PriceLT *decimal.Decimal
	OrderBy []SortField
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// GetByIDs returns the products that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the product and its wishlist associations.
	Delete(ctx context.Context, id uint) error
}
