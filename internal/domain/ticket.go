package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The tokens are the
// canonical wire vocabulary; localized display labels live in internal/vocab.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "InProgress"
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority enumerates SLA urgency. Priority is fixed at creation and
// determines the response deadline once, so it never changes afterwards.
type TicketPriority string

const (
	TicketPriorityUrgent TicketPriority = "Urgent"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityNormal TicketPriority = "Normal"
	TicketPriorityLow    TicketPriority = "Low"
)

// KnownStatus reports whether s is one of the canonical status tokens.
func KnownStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusPending,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// KnownPriority reports whether p is one of the canonical priority tokens.
func KnownPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityUrgent, TicketPriorityHigh, TicketPriorityNormal, TicketPriorityLow:
		return true
	}
	return false
}

// Ticket is the aggregate for helpdesk requests.
type Ticket struct {
	ID           int64
	Number       string
	CustomerID   int64
	DepartmentID int64
	AgentID      *int64
	Subject      string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	Category     string
	Subcategory  *string
	SLADeadline  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
