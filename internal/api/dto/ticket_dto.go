package dto

import (
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
	"github.com/codigo-hd/helpdesk-service/internal/sla"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject      string `json:"subject"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	DepartmentID int64  `json:"departmentId"`
	CustomerID   *int64 `json:"customerId,omitempty"`
	Category     string `json:"category,omitempty"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	NewStatus string `json:"newStatus"`
}

// TicketSummary is the list-view representation.
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

// ListData is the paginated envelope body.
type ListData[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Items    []T `json:"items"`
}

// NewTicketSummary maps a repository row to the wire summary, deriving the
// SLA fields at response time.
func NewTicketSummary(row *repository.TicketRow, now time.Time) TicketSummary {
	var slaHours *int
	if domain.KnownPriority(row.Ticket.Priority) {
		hours := sla.BudgetHours(row.Ticket.Priority)
		slaHours = &hours
	}
	return TicketSummary{
		ID:            row.Ticket.ID,
		Number:        row.Ticket.Number,
		Subject:       row.Ticket.Subject,
		Status:        string(row.Ticket.Status),
		Priority:      string(row.Ticket.Priority),
		Department:    row.DepartmentName,
		Customer:      row.CustomerName,
		AssignedAgent: row.AgentName,
		CreatedAt:     row.Ticket.CreatedAt,
		UpdatedAt:     row.Ticket.UpdatedAt,
		IsOverdue:     sla.IsOverdue(now, row.Ticket.SLADeadline),
		SLAHours:      slaHours,
		MessageCount:  row.MessageCount,
	}
}

// NewTicketDetail maps a repository row to the wire detail.
func NewTicketDetail(row *repository.TicketRow, now time.Time) TicketDetail {
	return TicketDetail{
		TicketSummary: NewTicketSummary(row, now),
		Description:   row.Ticket.Description,
	}
}
