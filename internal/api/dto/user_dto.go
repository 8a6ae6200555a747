package dto

import (
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

// UserResponse is the admin-facing account representation.
type UserResponse struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	UserType       string     `json:"userType"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	Department     *string    `json:"department,omitempty"`
	Specialization *string    `json:"specialization,omitempty"`
	Level          *int       `json:"level,omitempty"`
	IsAvailable    *bool      `json:"isAvailable,omitempty"`
}

// CreateUserRequest payload.
type CreateUserRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	UserType       string  `json:"userType"`
	IsActive       *bool   `json:"isActive,omitempty"`
	Department     *string `json:"department,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Level          *int    `json:"level,omitempty"`
	IsAvailable    *bool   `json:"isAvailable,omitempty"`
}

// NewUserResponse maps a user to the wire representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		Email:          user.Email,
		UserType:       string(user.UserType),
		IsActive:       user.IsActive,
		LastLoginAt:    user.LastLoginAt,
		Department:     user.Department,
		Specialization: user.Specialization,
		Level:          user.Level,
		IsAvailable:    user.IsAvailable,
	}
}
