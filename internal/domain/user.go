package domain

import "time"

// Role separates regular users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account in the directory. Accounts are never hard-deleted:
// deactivation clears Active and stamps DeactivatedAt, keeping the row so
// ticket references stay intact.
type User struct {
	ID            int64
	Username      string
	PasswordHash  string
	Role          Role
	Active        bool
	DeactivatedAt *time.Time
}

// UserSummary is the listing and authentication result shape. It never
// carries the password hash.
type UserSummary struct {
	ID       int64
	Username string
	Role     Role
}
