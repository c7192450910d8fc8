package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/events"
	"github.com/abkoo/ticketdesk/internal/persistence"
	"github.com/abkoo/ticketdesk/internal/repository"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

const (
	statsCacheKey = "ticketdesk:stats"
	statsCacheTTL = 30 * time.Second
)

// TicketService is the ticket store: creation, filtered retrieval, partial
// update and board statistics.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Cache      *persistence.Redis
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
	CreatorID   int64
}

// Create inserts a new ticket. Status and archived are forced server-side:
// every ticket starts as New and unarchived no matter what the caller sends.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown ticket category",
			map[string]any{"category": string(input.Category)})
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("unknown ticket priority",
			map[string]any{"priority": string(input.Priority)})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Category:    input.Category,
		Status:      domain.StatusNew,
		Priority:    priority,
		CreatorID:   input.CreatorID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:    events.EventTicketCreated,
		ActorID: input.CreatorID,
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// Get fetches a single ticket with creator and assignee usernames resolved.
func (s *TicketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// Find returns tickets matching the filter, most recently touched first.
func (s *TicketService) Find(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.Find(ctx, filter)
}

// Update applies a partial update. An empty patch returns immediately with
// no query issued. Assigning a ticket requires the assignee to be an active
// account. The repository overwrites updated_at on every write.
func (s *TicketService) Update(ctx context.Context, actorID, ticketID int64, patch repository.TicketPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	if patch.Assignee != nil && patch.Assignee.UserID != nil {
		assignee, err := s.users.GetByID(ctx, *patch.Assignee.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewReferenceInvalid("assignee does not exist",
					map[string]any{"assignee_id": *patch.Assignee.UserID})
			}
			return err
		}
		if !assignee.Active {
			return apperrors.NewReferenceInvalid("assignee is deactivated",
				map[string]any{"assignee_id": assignee.ID})
		}
	}

	if err := s.tickets.Update(ctx, ticketID, patch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return err
	}

	s.invalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:    events.EventTicketUpdated,
		ActorID: actorID,
		Payload: events.TicketUpdatedPayload{TicketID: ticketID, Fields: patchFields(patch)},
	})
	return nil
}

// Stats returns board-level counters, served from a short-lived cache when
// Redis is reachable.
func (s *TicketService) Stats(ctx context.Context) (*domain.TicketStats, error) {
	if cached, err := s.cache.GetString(ctx, statsCacheKey); err == nil {
		var stats domain.TicketStats
		if json.Unmarshal([]byte(cached), &stats) == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Debug("stats cache read failed", zap.Error(err))
	}

	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cache.SetString(ctx, statsCacheKey, string(encoded), statsCacheTTL); err != nil {
			s.logger.Debug("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *TicketService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func patchFields(patch repository.TicketPatch) []string {
	var fields []string
	if patch.Status != nil {
		fields = append(fields, "status")
	}
	if patch.Priority != nil {
		fields = append(fields, "priority")
	}
	if patch.Category != nil {
		fields = append(fields, "category")
	}
	if patch.Assignee != nil {
		fields = append(fields, "assignee_id")
	}
	if patch.Archived != nil {
		fields = append(fields, "archived")
	}
	return fields
}
