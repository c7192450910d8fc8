package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/abkoo/ticketdesk/internal/api/dto"
	"github.com/abkoo/ticketdesk/internal/auth"
	"github.com/abkoo/ticketdesk/internal/service"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	users  *service.UserService
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(users *service.UserService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	user, err := h.users.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(*user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Role:     string(user.Role),
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
