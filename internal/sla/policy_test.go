package sla

import (
	"testing"
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

func TestBudgetHours(t *testing.T) {
	cases := []struct {
		priority domain.TicketPriority
		want     int
	}{
		{domain.TicketPriorityUrgent, 2},
		{domain.TicketPriorityHigh, 8},
		{domain.TicketPriorityNormal, 24},
		{domain.TicketPriorityLow, 72},
	}
	for _, tc := range cases {
		if got := BudgetHours(tc.priority); got != tc.want {
			t.Errorf("BudgetHours(%s) = %d, want %d", tc.priority, got, tc.want)
		}
	}
}

func TestBudgetHoursUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown priority")
		}
	}()
	BudgetHours(domain.TicketPriority("Whatever"))
}

func TestDeadline(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Deadline(createdAt, domain.TicketPriorityUrgent)
	want := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Deadline = %v, want %v", got, want)
	}
}

func TestClassify(t *testing.T) {
	deadline := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want Urgency
	}{
		{"far before deadline", deadline.Add(-30 * time.Hour), UrgencyNormal},
		{"exactly 8h remaining", deadline.Add(-8 * time.Hour), UrgencyNormal},
		{"just under 8h remaining", deadline.Add(-8*time.Hour + time.Second), UrgencyAttention},
		{"exactly 2h remaining", deadline.Add(-2 * time.Hour), UrgencyAttention},
		{"just under 2h remaining", deadline.Add(-2*time.Hour + time.Second), UrgencyCritical},
		{"one minute remaining", deadline.Add(-time.Minute), UrgencyCritical},
		{"at the deadline", deadline, UrgencyCritical},
		{"one second past", deadline.Add(time.Second), UrgencyOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.now, &deadline); got != tc.want {
				t.Errorf("Classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyNoDeadline(t *testing.T) {
	if got := Classify(time.Now(), nil); got != UrgencyNormal {
		t.Errorf("Classify(nil deadline) = %s, want Normal", got)
	}
}

func TestUrgentTicketScenario(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := Deadline(createdAt, domain.TicketPriorityUrgent)

	if want := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC); !deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", deadline, want)
	}
	if got := Classify(time.Date(2024, 1, 1, 1, 59, 0, 0, time.UTC), &deadline); got != UrgencyCritical {
		t.Errorf("at 01:59 urgency = %s, want Critical", got)
	}
	if got := Classify(time.Date(2024, 1, 1, 2, 1, 0, 0, time.UTC), &deadline); got != UrgencyOverdue {
		t.Errorf("at 02:01 urgency = %s, want Overdue", got)
	}
	if !IsOverdue(time.Date(2024, 1, 1, 2, 0, 1, 0, time.UTC), &deadline) {
		t.Error("one second past the deadline should be overdue")
	}
}
