// Package client is the consuming side of the helpdesk REST API: wire DTOs,
// an HTTP implementation, and a Fetcher that reconciles responses into the
// local ticket cache. The UI shells (desktop/mobile) sit on top of this.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is the terminal "no such ticket" result. It is authoritative,
// not a transient failure, and must not be retried.
var ErrNotFound = errors.New("ticket not found")

// TicketSummary is the list-endpoint representation. It never carries a
// description. Status and Priority hold canonical tokens as lenient strings.
type TicketSummary struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Department    string    `json:"department"`
	Customer      string    `json:"customer"`
	AssignedAgent *string   `json:"assignedAgent,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	IsOverdue     bool      `json:"isOverdue"`
	SLAHours      *int      `json:"slaHours,omitempty"`
	MessageCount  int       `json:"messageCount"`
}

// TicketDetail extends the summary with detail-only fields.
type TicketDetail struct {
	TicketSummary
	Description string `json:"description"`
}

// TicketPage is one page of a ticket listing.
type TicketPage struct {
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Items    []TicketSummary `json:"items"`
}

// ListParams narrows a ticket listing.
type ListParams struct {
	Page     int
	PageSize int
	Query    string
}

// CreateTicketInput is the creation payload.
type CreateTicketInput struct {
	Subject      string `json:"subject"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	DepartmentID int64  `json:"departmentId"`
	CustomerID   *int64 `json:"customerId,omitempty"`
}

// API abstracts the ticket endpoints so the reconciliation logic can be
// exercised against fakes.
type API interface {
	GetTicketByNumber(ctx context.Context, number string) (*TicketDetail, error)
	GetTicketByID(ctx context.Context, id int64) (*TicketDetail, error)
	ListTickets(ctx context.Context, params ListParams) (*TicketPage, error)
	CreateTicket(ctx context.Context, input CreateTicketInput) (*TicketDetail, error)
	UpdateTicketStatus(ctx context.Context, id int64, newStatus string) error
}

// StatusError carries a non-404 HTTP failure back to callers.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Message)
}
