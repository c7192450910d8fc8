package dto

import "github.com/abkoo/ticketdesk/internal/domain"

// UserCreateRequest payload for admin account creation.
type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserDeactivateRequest requires the admin to repeat the victim's username
// as confirmation before the account is deactivated.
type UserDeactivateRequest struct {
	ConfirmUsername string `json:"confirm_username"`
}

// UserResponse is the wire shape for a directory entry.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewUserListResponse maps directory summaries.
func NewUserListResponse(users []domain.UserSummary) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, UserResponse{ID: u.ID, Username: u.Username, Role: string(u.Role)})
	}
	return result
}
