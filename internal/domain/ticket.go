package domain

import "time"

// TicketStatus enumerates the kanban lifecycle states.
type TicketStatus string

const (
	StatusNew           TicketStatus = "New"
	StatusInProgress    TicketStatus = "In Progress"
	StatusWaitingOnUser TicketStatus = "Waiting on user"
	StatusResolved      TicketStatus = "Resolved"
	StatusClosed        TicketStatus = "Closed"
)

// Valid reports whether the status is part of the lifecycle.
func (s TicketStatus) Valid() bool {
	for _, known := range StatusSequence {
		if s == known {
			return true
		}
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "Low"
	PriorityNormal   TicketPriority = "Normal"
	PriorityHigh     TicketPriority = "High"
	PriorityCritical TicketPriority = "Critical"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// TicketCategory enumerates coarse ticket classification.
type TicketCategory string

const (
	CategoryHardware TicketCategory = "Hardware"
	CategorySoftware TicketCategory = "Software"
	CategoryNetwork  TicketCategory = "Network"
	CategoryOther    TicketCategory = "Other"
)

// Valid reports whether the category is one of the known values.
func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryNetwork, CategoryOther:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CreatorName and AssigneeName
// are denormalized from the users table on read; AssigneeName is nil when the
// ticket is unassigned.
type Ticket struct {
	ID           int64
	Title        string
	Description  string
	Category     TicketCategory
	Status       TicketStatus
	Priority     TicketPriority
	CreatorID    int64
	AssigneeID   *int64
	CreatorName  string
	AssigneeName *string
	Archived     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TicketStats aggregates board-level counters. Archived rows are included in
// every counter except where the counter is the archived count itself.
type TicketStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Archived   int64 `json:"archived"`
}
