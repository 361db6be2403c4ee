package handlers

import (
	"github.com/vitokorn/buy-me-a-gift/internal/services"
	"github.com/vitokorn/buy-me-a-gift/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for product categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the category routes. Writes go through auth.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/categories", h.HandleListCategories)
	router.Post("/category/create", auth, h.HandleCreateCategory)
	router.Delete("/category/remove/:id", auth, h.HandleDeleteCategory)
}

// CategoryRequest is the body of a category create.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}

func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreateCategory creates a category and echoes its name.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	category, err := h.service.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": category.Name})
}

// HandleDeleteCategory deletes a category and its products.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
