package dto

import (
	"time"

	"github.com/abkoo/ticketdesk/internal/domain"
)

// TicketCreateRequest payload for opening a ticket.
type TicketCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// TicketUpdateRequest is a partial update. Absent fields stay untouched;
// ClearAssignee removes the current assignee and wins over AssigneeID.
type TicketUpdateRequest struct {
	Status        *string `json:"status,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	Category      *string `json:"category,omitempty"`
	AssigneeID    *int64  `json:"assignee_id,omitempty"`
	ClearAssignee bool    `json:"clear_assignee,omitempty"`
	Archived      *bool   `json:"archived,omitempty"`
}

// TicketResponse is the wire shape for a ticket row.
type TicketResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	CreatorID    int64     `json:"creator_id"`
	CreatorName  string    `json:"creator_name"`
	AssigneeID   *int64    `json:"assignee_id,omitempty"`
	AssigneeName *string   `json:"assignee_name,omitempty"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket to its wire shape.
func NewTicketResponse(t domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     string(t.Category),
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		CreatorID:    t.CreatorID,
		CreatorName:  t.CreatorName,
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		Archived:     t.Archived,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, NewTicketResponse(t))
	}
	return result
}
