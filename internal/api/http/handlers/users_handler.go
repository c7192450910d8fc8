package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/abkoo/ticketdesk/internal/api/dto"
	"github.com/abkoo/ticketdesk/internal/auth"
	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/service"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

// UsersHandler exposes admin directory management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserListResponse(users)})
}

// Create handles POST /api/admin/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.Create(c.UserContext(), req.Username, req.Password, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// Deactivate handles DELETE /api/admin/users/:id. The admin must repeat the
// target's username in the request body and cannot deactivate their own
// account. The directory itself does not enforce either rule.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || userID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid user id")
	}
	if userID == principal.User.ID {
		return apperrors.NewForbidden("cannot deactivate your own account")
	}

	var req dto.UserDeactivateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	target, err := h.users.FindActiveByUsername(c.UserContext(), req.ConfirmUsername)
	if err != nil || target.ID != userID {
		return apperrors.NewValidationError("confirmation username does not match", nil)
	}

	if err := h.users.Deactivate(c.UserContext(), principal.User.ID, userID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
