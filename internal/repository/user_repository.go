package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/abkoo/ticketdesk/internal/domain"
	"github.com/abkoo/ticketdesk/internal/persistence"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.UserSummary, error)
	Deactivate(ctx context.Context, id int64) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type userRepository struct {
	db *persistence.Postgres
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db *persistence.Postgres) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, active`

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			user.Username,
			user.PasswordHash,
			user.Role,
		).Scan(&user.ID, &user.Active)
	})
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, role, active, deactivated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, role, active, deactivated_at
        FROM users WHERE username=$1 AND active=TRUE`
	return r.fetchSingle(ctx, query, username)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.DeactivatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListActive(ctx context.Context) ([]domain.UserSummary, error) {
	const query = `
        SELECT id, username, role
        FROM users WHERE active=TRUE
        ORDER BY username ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserSummary
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// Deactivate soft-deletes an account. Re-deactivating keeps the original
// deactivation timestamp and succeeds, so the operation is idempotent.
func (r *userRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `
        UPDATE users SET active=FALSE, deactivated_at=COALESCE(deactivated_at, NOW())
        WHERE id=$1`

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	const query = `UPDATE users SET password_hash=$1 WHERE id=$2`

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query, hash, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}
