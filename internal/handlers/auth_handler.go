package handlers

import (
	"github.com/vitokorn/buy-me-a-gift/internal/middleware"
	"github.com/vitokorn/buy-me-a-gift/internal/services"
	"github.com/vitokorn/buy-me-a-gift/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validation.New(),
	}
}

// RegisterRoutes registers the authentication routes. limit is applied to the
// whole /auth group.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, limit fiber.Handler) {
	authRoutes := router.Group("/auth", limit)
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/refresh", h.HandleRefresh)

	requireUser := middleware.AuthRequired(h.authService)
	authRoutes.Post("/reset_password", requireUser, h.HandleResetPassword)
	authRoutes.Put("/reset_password", requireUser, h.HandleResetPassword)
	authRoutes.Patch("/reset_password", requireUser, h.HandleResetPassword)
}

// CredentialsRequest is the body of signup and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,max=254,account_email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req CredentialsRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// LoginRequest carries login credentials. The email format is not checked
// here so that any mismatch is reported as bad credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues an access/refresh token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	pair, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"access":   pair.Access,
		"refresh":  pair.Refresh,
		"lifetime": pair.Lifetime,
	})
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleRefresh issues a new access token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	access, err := h.authService.RefreshAccessToken(c.UserContext(), req.Refresh)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"access": access})
}

// ResetPasswordRequest is the body of a password change.
type ResetPasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// HandleResetPassword changes the authenticated user's password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.ResetPassword(c.UserContext(), user, req.OldPassword, req.NewPassword); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
