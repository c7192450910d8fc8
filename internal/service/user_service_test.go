package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abkoo/ticketdesk/internal/auth"
	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/events"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

func newUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(UserDependencies{
		UserRepo:   repo,
		Dispatcher: events.NewInMemoryDispatcher(),
		BcryptCost: bcrypt.MinCost,
	})
}

func TestUserServiceCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	require.NoError(t, svc.Create(ctx, "alice", "pw1", ""))

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotZero(t, user.ID)
	})

	t.Run("username trimmed", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "  alice  ", "pw1")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "wrong")
		assert.True(t, apperrors.IsCode(err, "AUTH_REJECTED"))
	})

	t.Run("unknown user gets the same rejection", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "mallory", "pw1")
		assert.True(t, apperrors.IsCode(err, "AUTH_REJECTED"))
	})
}

func TestUserServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newFakeUserRepo())

	assert.True(t, apperrors.IsCode(svc.Create(ctx, "", "pw", ""), "VALIDATION_FAILED"))
	assert.True(t, apperrors.IsCode(svc.Create(ctx, "bob", "", ""), "VALIDATION_FAILED"))
	assert.True(t, apperrors.IsCode(svc.Create(ctx, "bob", "pw", "superuser"), "VALIDATION_FAILED"))
}

func TestUserServiceDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newFakeUserRepo())

	require.NoError(t, svc.Create(ctx, "alice", "pw1", ""))
	err := svc.Create(ctx, "alice", "pw2", "")
	assert.True(t, apperrors.IsCode(err, "USERNAME_TAKEN"))
}

func TestUserServiceListActiveOrdered(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newFakeUserRepo())

	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, svc.Create(ctx, name, "pw", ""))
	}

	users, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)
}

func TestUserServiceDeactivate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	require.NoError(t, svc.Create(ctx, "alice", "pw1", ""))
	alice, err := svc.FindActiveByUsername(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, 99, alice.ID))

	t.Run("deactivated user cannot authenticate", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "pw1")
		assert.True(t, apperrors.IsCode(err, "AUTH_REJECTED"))
	})

	t.Run("deactivated user not listed", func(t *testing.T) {
		users, err := svc.ListActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("repeat deactivation is a no-op success", func(t *testing.T) {
		stamp := repo.users[alice.ID].DeactivatedAt
		require.NotNil(t, stamp)
		require.NoError(t, svc.Deactivate(ctx, 99, alice.ID))
		assert.False(t, repo.users[alice.ID].Active)
		assert.Equal(t, stamp, repo.users[alice.ID].DeactivatedAt)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		err := svc.Deactivate(ctx, 99, 12345)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})
}

func TestUserServiceLegacyHashMigration(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	legacy := &domain.User{Username: "old-timer", PasswordHash: "placeholder", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, legacy))
	repo.users[legacy.ID].PasswordHash = auth.LegacyHash("geheim", "0123456789abcdef")

	user, err := svc.Authenticate(ctx, "old-timer", "geheim")
	require.NoError(t, err)
	assert.Equal(t, "old-timer", user.Username)

	migrated := repo.users[legacy.ID].PasswordHash
	assert.False(t, strings.HasPrefix(migrated, "sha256$"), "hash should be re-written with bcrypt")
	ok, isLegacy := auth.VerifyPassword("geheim", migrated)
	assert.True(t, ok)
	assert.False(t, isLegacy)
}
