package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/codigo-hd/helpdesk-service/internal/auth"
	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

// UserService handles admin-side user management.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes the admin user-creation payload.
type UserCreateInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	UserType       domain.UserType
	IsActive       bool
	Department     *string
	Specialization *string
	Level          *int
	IsAvailable    *bool
}

// UserPage is one page of listed users.
type UserPage struct {
	Total    int
	Page     int
	PageSize int
	Items    []domain.User
}

// List returns a page of users matching the search term over email and name.
func (s *UserService) List(ctx context.Context, page, pageSize int, query string) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	items, total, err := s.users.List(ctx, repository.UserFilter{
		Query:  query,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &UserPage{Total: total, Page: page, PageSize: pageSize, Items: items}, nil
}

// Create registers a new account. Duplicate emails conflict; type-specific
// fields are kept only for the matching account type.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.FirstName == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("firstName, email, password required", nil)
	}

	switch input.UserType {
	case domain.UserTypeCustomer, domain.UserTypeAgent, domain.UserTypeAdmin:
	default:
		return nil, apperrors.NewValidationError("unknown userType", map[string]any{"userType": input.UserType})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hash,
		UserType:     input.UserType,
		IsActive:     input.IsActive,
	}
	switch input.UserType {
	case domain.UserTypeCustomer:
		user.Department = input.Department
	case domain.UserTypeAgent:
		user.Specialization = input.Specialization
		user.Level = defaultLevel(input.Level)
		user.IsAvailable = defaultAvailable(input.IsAvailable)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func defaultLevel(level *int) *int {
	if level != nil {
		return level
	}
	one := 1
	return &one
}

func defaultAvailable(avail *bool) *bool {
	if avail != nil {
		return avail
	}
	yes := true
	return &yes
}
