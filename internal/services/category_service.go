package services

import (
	"context"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"

	"github.com/sirupsen/logrus"
)

// CategoryService handles business logic related to product categories.
type CategoryService struct {
	repo   repositories.CategoryRepository
	events EventPublisher
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, events EventPublisher) *CategoryService {
	return &CategoryService{
		repo:   repo,
		events: publisherOrNoop(events),
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.ProductCategory, error) {
	return s.repo.GetAll(ctx)
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.ProductCategory, error) {
	category := &models.ProductCategory{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	logrus.WithField("category_id", category.ID).Info("Category created")
	publish(s.events, EventCategoryCreated, map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

// DeleteCategory deletes a category together with its products.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Category %d not found", id)
	}

	logrus.WithField("category_id", id).Info("Category deleted")
	publish(s.events, EventCategoryDeleted, map[string]interface{}{"category_id": id})
	return nil
}
