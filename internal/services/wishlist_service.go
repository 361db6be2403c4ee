package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"

	"github.com/sirupsen/logrus"
)

// WishlistService handles business logic related to wishlists.
type WishlistService struct {
	repo        repositories.WishlistRepository
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(repo repositories.WishlistRepository, productRepo repositories.ProductRepository, events EventPublisher) *WishlistService {
	return &WishlistService{
		repo:        repo,
		productRepo: productRepo,
		events:      publisherOrNoop(events),
	}
}

// CreateWishlist creates the user's wishlist from productIDs, kept in the
// given order. It fails if the user already has a wishlist or if two of the
// products share a category.
func (s *WishlistService) CreateWishlist(ctx context.Context, user *models.User, productIDs []uint) (*models.Wishlist, error) {
	logCtx := logrus.WithField("user_id", user.ID)

	exists, err := s.repo.ExistsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(ErrConflict, "This user already got wishlist")
	}

	products, err := s.resolveProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if err := checkCategoryUniqueness(products); err != nil {
		logCtx.WithError(err).Info("Wishlist rejected")
		return nil, err
	}

	wishlist := &models.Wishlist{UserID: user.ID}
	for i, p := range products {
		wishlist.Items = append(wishlist.Items, models.WishlistProduct{ProductID: p.ID, Position: i})
	}
	if err := s.repo.Create(ctx, wishlist); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, newError(ErrConflict, "This user already got wishlist")
		}
		return nil, err
	}

	logCtx.WithField("wishlist_id", wishlist.ID).Info("Wishlist created")
	publish(s.events, EventWishlistCreated, map[string]interface{}{
		"wishlist_id": wishlist.ID,
		"user_id":     user.ID,
		"products":    wishlist.ProductIDs(),
	})
	return wishlist, nil
}

// DeleteWishlist deletes a wishlist. Only its owner or an admin may do so.
func (s *WishlistService) DeleteWishlist(ctx context.Context, actor *models.User, id uint) error {
	wishlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Wishlist %d not found", id)
	}
	if wishlist.UserID != actor.ID && !actor.IsAdmin() {
		return newError(ErrForbidden, "You do not have permission to perform this action.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Wishlist %d not found", id)
	}

	logrus.WithFields(logrus.Fields{"wishlist_id": id, "actor_id": actor.ID}).Info("Wishlist deleted")
	publish(s.events, EventWishlistDeleted, map[string]interface{}{
		"wishlist_id": id,
		"user_id":     wishlist.UserID,
	})
	return nil
}

// GetWishlistByUser returns the wishlist owned by userID with its owner loaded.
func (s *WishlistService) GetWishlistByUser(ctx context.Context, userID uint) (*models.Wishlist, error) {
	wishlist, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "Wishlist of user %d not found", userID)
	}
	return wishlist, nil
}

// resolveProducts loads the products for ids, preserving the order of ids.
func (s *WishlistService) resolveProducts(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, newError(ErrValidation, "This list may not be empty.")
	}

	found, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wishlist products: %w", err)
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, newError(ErrValidation, "Invalid pk \"%d\" - object does not exist.", id)
		}
		products = append(products, p)
	}
	return products, nil
}

// checkCategoryUniqueness walks products in order and rejects the first one
// whose category was already seen.
func checkCategoryUniqueness(products []models.Product) error {
	seen := make(map[uint]bool, len(products))
	for _, p := range products {
		if seen[p.CategoryID] {
			return newError(ErrValidation, "This category already in list")
		}
		seen[p.CategoryID] = true
	}
	return nil
}
