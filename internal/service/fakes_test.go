package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository.
type fakeUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	r.seq++
	user.ID = r.seq
	user.Active = true
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetActiveByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username && user.Active {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListActive(_ context.Context) ([]domain.UserSummary, error) {
	var result []domain.UserSummary
	for _, user := range r.users {
		if user.Active {
			result = append(result, domain.UserSummary{ID: user.ID, Username: user.Username, Role: user.Role})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id int64) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Active = false
	if user.DeactivatedAt == nil {
		now := time.Now().UTC()
		user.DeactivatedAt = &now
	}
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = hash
	return nil
}

// fakeTicketRepo mirrors the SQL repository semantics in memory. Its clock
// advances one second per write so updated_at ordering is deterministic.
type fakeTicketRepo struct {
	seq         int64
	clock       time.Time
	tickets     map[int64]*domain.Ticket
	users       *fakeUserRepo
	updateCalls int
}

func newFakeTicketRepo(users *fakeUserRepo) *fakeTicketRepo {
	return &fakeTicketRepo{
		clock:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		tickets: make(map[int64]*domain.Ticket),
		users:   users,
	}
}

func (r *fakeTicketRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.users.users[ticket.CreatorID]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "tickets_creator_id_fkey"}
	}
	r.seq++
	ticket.ID = r.seq
	ticket.Archived = false
	now := r.tick()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := r.withNames(*ticket)
	return &clone, nil
}

func (r *fakeTicketRepo) Find(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if !filter.IncludeArchived && ticket.Archived {
			continue
		}
		if filter.CreatorID != nil && ticket.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.Category != nil && ticket.Category != *filter.Category {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if term != "" &&
				!strings.Contains(strings.ToLower(ticket.Title), term) &&
				!strings.Contains(strings.ToLower(ticket.Description), term) {
				continue
			}
		}
		result = append(result, r.withNames(*ticket))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *fakeTicketRepo) Update(_ context.Context, id int64, patch repository.TicketPatch) error {
	r.updateCalls++
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.Category != nil {
		ticket.Category = *patch.Category
	}
	if patch.Assignee != nil {
		if patch.Assignee.UserID != nil {
			if _, ok := r.users.users[*patch.Assignee.UserID]; !ok {
				return &pgconn.PgError{Code: "23503", ConstraintName: "tickets_assignee_id_fkey"}
			}
		}
		ticket.AssigneeID = patch.Assignee.UserID
	}
	if patch.Archived != nil {
		ticket.Archived = *patch.Archived
	}
	ticket.UpdatedAt = r.tick()
	return nil
}

func (r *fakeTicketRepo) Stats(_ context.Context) (*domain.TicketStats, error) {
	var stats domain.TicketStats
	for _, ticket := range r.tickets {
		stats.Total++
		switch ticket.Status {
		case domain.StatusNew:
			stats.New++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusResolved:
			stats.Resolved++
		}
		if ticket.Archived {
			stats.Archived++
		}
	}
	return &stats, nil
}

func (r *fakeTicketRepo) withNames(ticket domain.Ticket) domain.Ticket {
	if creator, ok := r.users.users[ticket.CreatorID]; ok {
		ticket.CreatorName = creator.Username
	}
	if ticket.AssigneeID != nil {
		if assignee, ok := r.users.users[*ticket.AssigneeID]; ok {
			name := assignee.Username
			ticket.AssigneeName = &name
		}
	}
	return ticket
}
