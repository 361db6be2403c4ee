package handlers

import (
	"time"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/services"
	"github.com/vitokorn/buy-me-a-gift/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes. Writes go through auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/product/get/:id", h.HandleGetProduct)
	router.Post("/product/create", auth, h.HandleCreateProduct)
	router.Put("/product/update/:id", auth, h.HandleReplaceProduct)
	router.Patch("/product/update/:id", auth, h.HandlePatchProduct)
	router.Delete("/product/delete/:id", auth, h.HandleDeleteProduct)
}

// ProductResponse is the JSON shape of a product. Prices always carry two
// decimal places.
type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Rank        int       `json:"rank"`
	Category    uint      `json:"category"`
	CreatedTime time.Time `json:"created_time"`
	UpdatedTime time.Time `json:"updated_time"`
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Rank:        p.Rank,
		Category:    p.CategoryID,
		CreatedTime: p.CreatedTime,
		UpdatedTime: p.UpdatedTime,
	}
}

// ProductRequest is the body of a create or a full update.
type ProductRequest struct {
	Name     string           `json:"name" validate:"required,max=20"`
	Price    *decimal.Decimal `json:"price" validate:"required,price"`
	Rank     *int             `json:"rank" validate:"required"`
	Category *uint            `json:"category" validate:"required"`
}

// ProductPatchRequest is the body of a partial update. Category is still required.
type ProductPatchRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=20"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,price"`
	Rank     *int             `json:"rank"`
	Category *uint            `json:"category" validate:"required"`
}

// HandleListProducts lists products filtered by price_gt and price_lt and
// ordered by sorting.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), services.ProductQuery{
		PriceGT: c.Query("price_gt"),
		PriceLT: c.Query("price_lt"),
		Sorting: c.Query("sorting"),
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, newProductResponse(&products[i]))
	}
	return c.JSON(resp)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), services.ProductInput{
		Name:       req.Name,
		Price:      *req.Price,
		Rank:       *req.Rank,
		CategoryID: *req.Category,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(product))
}

// HandleReplaceProduct handles PUT, which needs every field.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ProductRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	return h.update(c, id, services.ProductPatch{
		Name:       &req.Name,
		Price:      req.Price,
		Rank:       req.Rank,
		CategoryID: *req.Category,
	})
}

// HandlePatchProduct handles PATCH, which may omit any field but category.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ProductPatchRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	return h.update(c, id, services.ProductPatch{
		Name:       req.Name,
		Price:      req.Price,
		Rank:       req.Rank,
		CategoryID: *req.Category,
	})
}

func (h *ProductHandler) update(c *fiber.Ctx, id uint, patch services.ProductPatch) error {
	product, err := h.service.UpdateProduct(c.UserContext(), id, patch)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
