package handlers

import (
	"github.com/vitokorn/buy-me-a-gift/internal/middleware"
	"github.com/vitokorn/buy-me-a-gift/internal/services"
	"github.com/vitokorn/buy-me-a-gift/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for wishlists.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the wishlist routes. Writes go through auth.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/wishlist/create", auth, h.HandleCreateWishlist)
	router.Delete("/wishlist/delete/:id", auth, h.HandleDeleteWishlist)
	router.Get("/wishlist/:user_id", h.HandleGetUserWishlist)
}

// WishlistRequest lists product ids in the order they should be kept.
// Emptiness is reported by the service.
type WishlistRequest struct {
	Products []uint `json:"products" validate:"required"`
}

// HandleCreateWishlist creates the wishlist of the authenticated user.
func (h *WishlistHandler) HandleCreateWishlist(c *fiber.Ctx) error {
	var req WishlistRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	user := middleware.CurrentUser(c)
	wishlist, err := h.service.CreateWishlist(c.UserContext(), user, req.Products)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       wishlist.ID,
		"user":     wishlist.UserID,
		"products": wishlist.ProductIDs(),
	})
}

// HandleDeleteWishlist deletes a wishlist owned by the caller, or any
// wishlist when the caller is an admin.
func (h *WishlistHandler) HandleDeleteWishlist(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteWishlist(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetUserWishlist returns the owner's email and the ordered product ids.
func (h *WishlistHandler) HandleGetUserWishlist(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	wishlist, err := h.service.GetWishlistByUser(c.UserContext(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	email := ""
	if wishlist.User != nil {
		email = wishlist.User.Email
	}
	return c.JSON(fiber.Map{
		"user":     email,
		"products": wishlist.ProductIDs(),
	})
}
