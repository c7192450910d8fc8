package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/persistence"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

// TicketFilter captures board and admin search parameters. Nil fields are
// unrestricted; IncludeArchived widens the default non-archived view.
type TicketFilter struct {
	CreatorID       *int64
	IncludeArchived bool
	SearchTerm      *string
	Category        *domain.TicketCategory
	Priority        *domain.TicketPriority
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Find(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, id int64, patch TicketPatch) error
	Stats(ctx context.Context) (*domain.TicketStats, error)
}

type ticketRepository struct {
	db *persistence.Postgres
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(db *persistence.Postgres) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, category, status, priority, creator_id, archived)
        VALUES ($1,$2,$3,$4,$5,$6,FALSE)
        RETURNING id, archived, created_at, updated_at`

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			ticket.Title,
			ticket.Description,
			ticket.Category,
			ticket.Status,
			ticket.Priority,
			ticket.CreatorID,
		).Scan(&ticket.ID, &ticket.Archived, &ticket.CreatedAt, &ticket.UpdatedAt)
	})
}

const ticketSelect = `
    SELECT t.id, t.title, t.description, t.category, t.status, t.priority,
           t.creator_id, t.assignee_id, u.username, a.username,
           t.archived, t.created_at, t.updated_at
    FROM tickets t
    JOIN users u ON u.id = t.creator_id
    LEFT JOIN users a ON a.id = t.assignee_id`

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := ticketSelect + ` WHERE t.id=$1`

	var ticket domain.Ticket
	if err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatorID,
		&ticket.AssigneeID,
		&ticket.CreatorName,
		&ticket.AssigneeName,
		&ticket.Archived,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Find(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if !filter.IncludeArchived {
		clauses = append(clauses, "t.archived = FALSE")
	}
	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("t.creator_id=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("t.category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("t.priority=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(t.title) LIKE %s OR LOWER(t.description) LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.updated_at DESC",
		ticketSelect, strings.Join(clauses, " AND "))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// Update applies a typed partial update. The updated_at column is always
// overwritten server-side; callers cannot supply it. An empty patch must be
// rejected by the caller before reaching the repository.
func (r *ticketRepository) Update(ctx context.Context, id int64, patch TicketPatch) error {
	if patch.IsEmpty() {
		return apperrors.NewValidationError("empty ticket patch", nil)
	}

	query, args := buildTicketUpdate(id, patch)
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *ticketRepository) Stats(ctx context.Context) (*domain.TicketStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status=$1),
               COUNT(*) FILTER (WHERE status=$2),
               COUNT(*) FILTER (WHERE status=$3),
               COUNT(*) FILTER (WHERE archived)
        FROM tickets`

	var stats domain.TicketStats
	if err := r.db.Pool.QueryRow(ctx, query,
		domain.StatusNew,
		domain.StatusInProgress,
		domain.StatusResolved,
	).Scan(&stats.Total, &stats.New, &stats.InProgress, &stats.Resolved, &stats.Archived); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Status,
			&ticket.Priority,
			&ticket.CreatorID,
			&ticket.AssigneeID,
			&ticket.CreatorName,
			&ticket.AssigneeName,
			&ticket.Archived,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
