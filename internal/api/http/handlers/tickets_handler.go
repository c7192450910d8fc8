package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/abkoo/ticketdesk/internal/api/dto"
	"github.com/abkoo/ticketdesk/internal/auth"
	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/repository"
	"github.com/abkoo/ticketdesk/internal/service"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

// TicketsHandler exposes the kanban board operations.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// List handles GET /api/tickets with optional archived, creator_id, q,
// category and priority query filters.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := repository.TicketFilter{
		IncludeArchived: c.QueryBool("archived", false),
	}
	if raw := c.Query("creator_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid creator_id")
		}
		filter.CreatorID = &id
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.TicketCategory(raw)
		filter.Category = &category
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.TicketPriority(raw)
		filter.Priority = &priority
	}

	tickets, err := h.tickets.Find(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketListResponse(tickets)})
}

// AdminList handles GET /api/admin/tickets: the raw browse view, archived
// rows included.
func (h *TicketsHandler) AdminList(c *fiber.Ctx) error {
	tickets, err := h.tickets.Find(c.UserContext(), repository.TicketFilter{IncludeArchived: true})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketListResponse(tickets)})
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TicketCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	ticket, err := h.tickets.Create(c.UserContext(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.TicketCategory(req.Category),
		Priority:    domain.TicketPriority(req.Priority),
		CreatorID:   principal.User.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(*ticket)})
}

// Update handles PATCH /api/tickets/:id. Regular users may only change
// status and assignee; priority, category and archival are admin actions,
// matching the board's edit surface.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.TicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	patch := buildPatch(req)
	if !principal.IsAdmin() && (patch.Priority != nil || patch.Category != nil || patch.Archived != nil) {
		return apperrors.NewForbidden("admin role required for this change")
	}

	if err := h.tickets.Update(c.UserContext(), principal.User.ID, ticketID, patch); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Move handles POST /api/tickets/:id/move?dir=next|prev, shifting a ticket
// one kanban column with clamping at both ends.
func (h *TicketsHandler) Move(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.Get(c.UserContext(), ticketID)
	if err != nil {
		return err
	}

	var next domain.TicketStatus
	switch c.Query("dir", "next") {
	case "next":
		next = domain.NextStatus(ticket.Status)
	case "prev":
		next = domain.PrevStatus(ticket.Status)
	default:
		return fiber.NewError(http.StatusBadRequest, "dir must be next or prev")
	}

	if next != ticket.Status {
		patch := repository.TicketPatch{Status: &next}
		if err := h.tickets.Update(c.UserContext(), principal.User.ID, ticketID, patch); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": ticketID, "status": string(next)}})
}

// Stats handles GET /api/tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.tickets.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid ticket id")
	}
	return id, nil
}

func buildPatch(req dto.TicketUpdateRequest) repository.TicketPatch {
	var patch repository.TicketPatch
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Category != nil {
		category := domain.TicketCategory(*req.Category)
		patch.Category = &category
	}
	switch {
	case req.ClearAssignee:
		patch.Assignee = &repository.AssigneePatch{}
	case req.AssigneeID != nil:
		patch.Assignee = &repository.AssigneePatch{UserID: req.AssigneeID}
	}
	if req.Archived != nil {
		patch.Archived = req.Archived
	}
	return patch
}
