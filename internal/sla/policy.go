// Package sla implements the response-time policy: how long a ticket may wait
// for attention given its priority, and how urgent a ticket is right now
// relative to its deadline. Every function is pure and safe to call on every
// request without caching.
package sla

import (
	"fmt"
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

// Urgency classifies how close a ticket is to breaching its deadline.
type Urgency string

const (
	UrgencyNormal    Urgency = "Normal"
	UrgencyAttention Urgency = "Attention"
	UrgencyCritical  Urgency = "Critical"
	UrgencyOverdue   Urgency = "Overdue"
)

const (
	criticalWindow  = 2 * time.Hour
	attentionWindow = 8 * time.Hour
)

var budgetHours = map[domain.TicketPriority]int{
	domain.TicketPriorityUrgent: 2,
	domain.TicketPriorityHigh:   8,
	domain.TicketPriorityNormal: 24,
	domain.TicketPriorityLow:    72,
}

// BudgetHours returns the response budget for a priority. The priority set is
// closed upstream, so an unknown value is a programmer error and panics.
func BudgetHours(p domain.TicketPriority) int {
	hours, ok := budgetHours[p]
	if !ok {
		panic(fmt.Sprintf("sla: unknown priority %q", p))
	}
	return hours
}

// Deadline computes the response deadline for a ticket created at createdAt.
// Plain hour arithmetic; deadlines are points in time, not business-day aware.
func Deadline(createdAt time.Time, p domain.TicketPriority) time.Time {
	return createdAt.Add(time.Duration(BudgetHours(p)) * time.Hour)
}

// Classify returns the urgency of a ticket at instant now. A nil deadline
// means no SLA pressure, never overdue.
//
// Intervals are half-open: Overdue when the deadline has passed, Critical when
// less than 2h remain, Attention when between 2h (inclusive) and 8h remain.
func Classify(now time.Time, deadline *time.Time) Urgency {
	if deadline == nil {
		return UrgencyNormal
	}
	remaining := deadline.Sub(now)
	switch {
	case remaining < 0:
		return UrgencyOverdue
	case remaining < criticalWindow:
		return UrgencyCritical
	case remaining < attentionWindow:
		return UrgencyAttention
	default:
		return UrgencyNormal
	}
}

// IsOverdue is a convenience for list summaries.
func IsOverdue(now time.Time, deadline *time.Time) bool {
	return Classify(now, deadline) == UrgencyOverdue
}
