package response

import (
	"roombook/internal/domain/user"
)

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:         u.ID(),
		Email:      u.Email(),
		Name:       u.Name(),
		Role:       string(u.Role()),
		Department: u.Department(),
	}
}
