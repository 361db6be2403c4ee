package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProductInput carries the fields of a product create.
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	Rank       int
	CategoryID uint
}

// ProductPatch carries an update. Nil fields keep their current value; the
// category is always given.
type ProductPatch struct {
	Name       *string
	Price      *decimal.Decimal
	Rank       *int
	CategoryID uint
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	events       EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		events:       publisherOrNoop(events),
	}
}

// ListProducts returns the products matching the query. An empty result is
// reported as ErrNotFound.
func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	filter, err := BuildProductFilter(q)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, newError(ErrNotFound, "No products found")
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Product %d not found", id)
	}
	return product, nil
}

// CreateProduct creates a new product in an existing category.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:       in.Name,
		Price:      in.Price,
		Rank:       in.Rank,
		CategoryID: in.CategoryID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"product_id": product.ID, "category_id": product.CategoryID}).Info("Product created")
	publish(s.events, EventProductCreated, productEventData(product))
	return product, nil
}

// UpdateProduct applies patch to the product with the given ID.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, patch.CategoryID); err != nil {
		return nil, err
	}

	product.CategoryID = patch.CategoryID
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Rank != nil {
		product.Rank = *patch.Rank
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, notFoundOr(err, "Product %d not found", id)
	}
	updated, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	publish(s.events, EventProductUpdated, productEventData(updated))
	return updated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Product %d not found", id)
	}
	publish(s.events, EventProductDeleted, map[string]interface{}{"product_id": id})
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrValidation, "Invalid pk \"%d\" - object does not exist.", categoryID)
		}
		return fmt.Errorf("failed to check category: %w", err)
	}
	return nil
}

func productEventData(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"product_id":  p.ID,
		"name":        p.Name,
		"price":       p.Price.StringFixed(2),
		"rank":        p.Rank,
		"category_id": p.CategoryID,
	}
}

// notFoundOr converts repositories.ErrNotFound into a service NotFound error
// and passes anything else through.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(ErrNotFound, format, args...)
	}
	return err
}
