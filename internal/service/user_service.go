package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/abkoo/ticketdesk/internal/auth"
	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/events"
	"github.com/abkoo/ticketdesk/internal/repository"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

// UserService is the user directory: account lookup, creation, deactivation
// and authentication.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	BcryptCost int
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
	}
}

// FindActiveByUsername looks up an active account, trimming surrounding
// whitespace from the username first.
func (s *UserService) FindActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetActiveByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials against an active account. Unknown
// usernames, wrong passwords and deactivated accounts all produce the same
// rejection. A hash from the retired scheme that still verifies is replaced
// with a bcrypt hash before the result is returned.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.UserSummary, error) {
	user, err := s.users.GetActiveByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAuthRejected()
		}
		return nil, err
	}

	ok, legacy := auth.VerifyPassword(password, user.PasswordHash)
	if !ok {
		return nil, apperrors.NewAuthRejected()
	}

	if legacy {
		if hash, err := auth.HashPassword(password, s.bcryptCost); err == nil {
			if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				s.logger.Warn("legacy hash migration failed",
					zap.Int64("user_id", user.ID), zap.Error(err))
			}
		}
	}

	return &domain.UserSummary{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Create registers a new account. The role defaults to user; a duplicate
// username surfaces as a USERNAME_TAKEN conflict.
func (s *UserService) Create(ctx context.Context, username, password string, role domain.Role) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.ToDomainError(err).Code == "USERNAME_TAKEN" {
			return apperrors.NewUsernameTaken(username)
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserCreated,
		ActorID: user.ID,
		Payload: events.UserCreatedPayload{Username: user.Username, Role: user.Role},
	})
	return nil
}

// ListActive returns active accounts ordered by username.
func (s *UserService) ListActive(ctx context.Context) ([]domain.UserSummary, error) {
	return s.users.ListActive(ctx)
}

// Deactivate soft-deletes an account. Repeating the call is a no-op success.
// Whether the caller may deactivate the target is a presentation-layer
// decision; the directory trusts it.
func (s *UserService) Deactivate(ctx context.Context, actorID, userID int64) error {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserDeactivated,
		ActorID: actorID,
		Payload: events.UserDeactivatedPayload{UserID: userID},
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
