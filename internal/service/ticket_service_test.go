package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/events"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

type fakeTicketRepo struct {
	created    *domain.Ticket
	rows       map[int64]*repository.TicketRow
	statusSets []domain.TicketStatus
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = 7
	ticket.Number = "HD-2024-0007"
	ticket.CreatedAt = time.Now().UTC()
	ticket.UpdatedAt = ticket.CreatedAt
	r.created = ticket
	if r.rows == nil {
		r.rows = make(map[int64]*repository.TicketRow)
	}
	r.rows[ticket.ID] = &repository.TicketRow{Ticket: *ticket, DepartmentName: "TI", CustomerName: "Ana Souza"}
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*repository.TicketRow, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return row, nil
}

func (r *fakeTicketRepo) GetByNumber(_ context.Context, number string) (*repository.TicketRow, error) {
	for _, row := range r.rows {
		if row.Ticket.Number == number {
			return row, nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", nil)
}

func (r *fakeTicketRepo) List(_ context.Context, _ repository.TicketFilter) ([]repository.TicketRow, int, error) {
	return nil, 0, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) error {
	r.statusSets = append(r.statusSets, status)
	if row, ok := r.rows[id]; ok {
		row.Ticket.Status = status
	}
	return nil
}

type fakeDepartmentRepo struct {
	dept *domain.Department
}

func (r *fakeDepartmentRepo) Create(_ context.Context, _ *domain.Department) error { return nil }

func (r *fakeDepartmentRepo) GetByID(_ context.Context, _ int64) (*domain.Department, error) {
	if r.dept == nil {
		return nil, apperrors.NewNotFound("department", nil)
	}
	return r.dept, nil
}

func (r *fakeDepartmentRepo) ListActive(_ context.Context) ([]domain.Department, error) {
	if r.dept == nil {
		return nil, nil
	}
	return []domain.Department{*r.dept}, nil
}

func newTicketService(tickets *fakeTicketRepo, depts *fakeDepartmentRepo, dispatcher events.Dispatcher) *TicketService {
	svc := NewTicketService(TicketDependencies{
		TicketRepo:     tickets,
		DepartmentRepo: depts,
		Dispatcher:     dispatcher,
	})
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func activeDept() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{dept: &domain.Department{ID: 1, Name: "TI", IsActive: true}}
}

func TestCreateComputesDeadlineFromPriority(t *testing.T) {
	tickets := &fakeTicketRepo{}
	svc := newTicketService(tickets, activeDept(), nil)

	row, err := svc.Create(context.Background(), TicketCreateInput{
		Subject:      "  Server room too warm  ",
		Description:  "AC offline since morning.",
		Priority:     domain.TicketPriorityUrgent,
		DepartmentID: 1,
		CustomerID:   3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if row.Ticket.Subject != "Server room too warm" {
		t.Errorf("subject not trimmed: %q", row.Ticket.Subject)
	}
	if row.Ticket.Status != domain.TicketStatusOpen {
		t.Errorf("status = %s", row.Ticket.Status)
	}
	want := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	if row.Ticket.SLADeadline == nil || !row.Ticket.SLADeadline.Equal(want) {
		t.Errorf("slaDeadline = %v, want %v", row.Ticket.SLADeadline, want)
	}
}

func TestCreateDefaultsPriorityToNormal(t *testing.T) {
	tickets := &fakeTicketRepo{}
	svc := newTicketService(tickets, activeDept(), nil)

	row, err := svc.Create(context.Background(), TicketCreateInput{
		Subject:      "Mouse broken",
		DepartmentID: 1,
		CustomerID:   3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if row.Ticket.Priority != domain.TicketPriorityNormal {
		t.Errorf("priority = %s", row.Ticket.Priority)
	}
	want := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	if row.Ticket.SLADeadline == nil || !row.Ticket.SLADeadline.Equal(want) {
		t.Errorf("slaDeadline = %v, want %v", row.Ticket.SLADeadline, want)
	}
}

func TestCreateRejectsUnknownPriority(t *testing.T) {
	svc := newTicketService(&fakeTicketRepo{}, activeDept(), nil)

	_, err := svc.Create(context.Background(), TicketCreateInput{
		Subject:      "Anything",
		Priority:     domain.TicketPriority("Blocker"),
		DepartmentID: 1,
		CustomerID:   3,
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestCreateRejectsInactiveDepartment(t *testing.T) {
	depts := &fakeDepartmentRepo{dept: &domain.Department{ID: 1, Name: "Arquivado", IsActive: false}}
	svc := newTicketService(&fakeTicketRepo{}, depts, nil)

	_, err := svc.Create(context.Background(), TicketCreateInput{
		Subject:      "Anything",
		DepartmentID: 1,
		CustomerID:   3,
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	svc := newTicketService(&fakeTicketRepo{}, activeDept(), dispatcher)

	if _, err := svc.Create(context.Background(), TicketCreateInput{
		Subject:      "Anything",
		DepartmentID: 1,
		CustomerID:   3,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("events published = %d", len(got))
	}
	if got[0].TicketNumber != "HD-2024-0007" || got[0].ActorID != 3 {
		t.Errorf("event = %+v", got[0])
	}
	if got[0].ID == "" || got[0].Timestamp.IsZero() {
		t.Error("event id/timestamp not stamped")
	}
}

func TestUpdateStatusRejectsUnknownToken(t *testing.T) {
	svc := newTicketService(&fakeTicketRepo{}, activeDept(), nil)

	err := svc.UpdateStatus(context.Background(), 1, 7, domain.TicketStatus("Escalated"))
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestUpdateStatusSameValueIsNoop(t *testing.T) {
	tickets := &fakeTicketRepo{}
	svc := newTicketService(tickets, activeDept(), nil)
	if _, err := svc.Create(context.Background(), TicketCreateInput{
		Subject: "Anything", DepartmentID: 1, CustomerID: 3,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), 1, 7, domain.TicketStatusOpen); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(tickets.statusSets) != 0 {
		t.Errorf("repository touched %d times for a same-status update", len(tickets.statusSets))
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tickets := &fakeTicketRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	var changes []events.TicketStatusChangedPayload
	dispatcher.Subscribe(events.EventTicketStatusChanged, func(_ context.Context, e events.Event) error {
		changes = append(changes, e.Payload.(events.TicketStatusChangedPayload))
		return nil
	})
	svc := newTicketService(tickets, activeDept(), dispatcher)
	if _, err := svc.Create(context.Background(), TicketCreateInput{
		Subject: "Anything", DepartmentID: 1, CustomerID: 3,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), 1, 7, domain.TicketStatusResolved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(tickets.statusSets) != 1 || tickets.statusSets[0] != domain.TicketStatusResolved {
		t.Errorf("statusSets = %v", tickets.statusSets)
	}
	if len(changes) != 1 || changes[0].OldStatus != domain.TicketStatusOpen || changes[0].NewStatus != domain.TicketStatusResolved {
		t.Errorf("changes = %+v", changes)
	}
}

func TestListClampsPagination(t *testing.T) {
	svc := newTicketService(&fakeTicketRepo{}, activeDept(), nil)

	page, err := svc.List(context.Background(), -3, 10000, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 || page.PageSize != 200 {
		t.Errorf("page=%d pageSize=%d", page.Page, page.PageSize)
	}
}
