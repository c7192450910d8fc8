package events

import (
	"time"

	"github.com/abkoo/ticketdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketUpdated   EventType = "ticket_updated"
	EventUserCreated     EventType = "user_created"
	EventUserDeactivated EventType = "user_deactivated"
)

// AllEventTypes lists every event the dispatcher can carry, for subscribers
// that want the full stream.
var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketUpdated,
	EventUserCreated,
	EventUserDeactivated,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID int64                 `json:"ticket_id"`
	Title    string                `json:"title"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload lists the fields a patch touched.
type TicketUpdatedPayload struct {
	TicketID int64    `json:"ticket_id"`
	Fields   []string `json:"fields"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// UserDeactivatedPayload payload.
type UserDeactivatedPayload struct {
	UserID int64 `json:"user_id"`
}
