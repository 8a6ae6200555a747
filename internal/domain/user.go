package domain

import "time"

// UserType distinguishes account roles.
type UserType string

const (
	UserTypeCustomer UserType = "Customer"
	UserTypeAgent    UserType = "Agent"
	UserTypeAdmin    UserType = "Admin"
)

// User is the domain model for every account: customers who open tickets,
// agents who work them and admins who manage users.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	UserType     UserType
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Customer-only.
	Department *string

	// Agent-only.
	Specialization *string
	Level          *int
	IsAvailable    *bool
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
