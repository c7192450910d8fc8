package repository

import (
	"fmt"
	"strings"

	"github.com/abkoo/ticketdesk/internal/domain"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

// TicketPatch is a closed set of optional field changes. Column names are
// fixed here rather than derived from caller input, so a patch can never
// reach columns the update contract does not cover.
type TicketPatch struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	Category *domain.TicketCategory
	Assignee *AssigneePatch
	Archived *bool
}

// AssigneePatch changes the assignee. A nil UserID clears the assignment.
type AssigneePatch struct {
	UserID *int64
}

// IsEmpty reports whether the patch changes nothing.
func (p TicketPatch) IsEmpty() bool {
	return p.Status == nil && p.Priority == nil && p.Category == nil &&
		p.Assignee == nil && p.Archived == nil
}

// Validate rejects values outside the fixed enums before they reach SQL.
func (p TicketPatch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return apperrors.NewValidationError("unknown ticket status",
			map[string]any{"status": string(*p.Status)})
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return apperrors.NewValidationError("unknown ticket priority",
			map[string]any{"priority": string(*p.Priority)})
	}
	if p.Category != nil && !p.Category.Valid() {
		return apperrors.NewValidationError("unknown ticket category",
			map[string]any{"category": string(*p.Category)})
	}
	return nil
}

// buildTicketUpdate renders the patch into an UPDATE statement with numbered
// placeholders. updated_at is unconditionally appended server-side.
func buildTicketUpdate(id int64, patch TicketPatch) (string, []any) {
	sets := []string{}
	args := []any{}

	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if patch.Priority != nil {
		args = append(args, *patch.Priority)
		sets = append(sets, fmt.Sprintf("priority=$%d", len(args)))
	}
	if patch.Category != nil {
		args = append(args, *patch.Category)
		sets = append(sets, fmt.Sprintf("category=$%d", len(args)))
	}
	if patch.Assignee != nil {
		args = append(args, patch.Assignee.UserID)
		sets = append(sets, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if patch.Archived != nil {
		args = append(args, *patch.Archived)
		sets = append(sets, fmt.Sprintf("archived=$%d", len(args)))
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tickets SET %s WHERE id=$%d",
		strings.Join(sets, ", "), len(args))
	return query, args
}
