package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/events"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
	"github.com/codigo-hd/helpdesk-service/internal/sla"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	messages    repository.MessageRepository
	attachments repository.AttachmentRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	MessageRepo    repository.MessageRepository
	AttachmentRepo repository.AttachmentRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
}

// TicketCreateInput describes the creation payload.
type TicketCreateInput struct {
	Subject      string
	Description  string
	Priority     domain.TicketPriority
	DepartmentID int64
	CustomerID   int64
	Category     string
	Subcategory  *string
}

// TicketPage is one page of listed tickets.
type TicketPage struct {
	Total    int
	Page     int
	PageSize int
	Items    []repository.TicketRow
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		messages:    deps.MessageRepo,
		attachments: deps.AttachmentRepo,
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
		now:         time.Now,
	}
}

// Create opens a new ticket. The response deadline is derived from the
// priority once, here; priority never changes afterwards so the deadline is
// final.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*repository.TicketRow, error) {
	dept, err := s.departments.GetByID(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !dept.IsActive || dept.IsDeleted {
		return nil, apperrors.NewValidationError("department inactive", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityNormal
	}
	if !domain.KnownPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	now := s.now().UTC()
	deadline := sla.Deadline(now, priority)

	ticket := &domain.Ticket{
		CustomerID:   input.CustomerID,
		DepartmentID: input.DepartmentID,
		Subject:      strings.TrimSpace(input.Subject),
		Description:  strings.TrimSpace(input.Description),
		Status:       domain.TicketStatusOpen,
		Priority:     priority,
		Category:     input.Category,
		Subcategory:  input.Subcategory,
		SLADeadline:  &deadline,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCreated,
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		ActorID:      input.CustomerID,
		Payload: events.TicketCreatedPayload{
			DepartmentID: ticket.DepartmentID,
			Priority:     ticket.Priority,
			Subject:      ticket.Subject,
			SLADeadline:  ticket.SLADeadline,
		},
	})
	return s.tickets.GetByID(ctx, ticket.ID)
}

// List returns a page of tickets matching the search term.
func (s *TicketService) List(ctx context.Context, page, pageSize int, query string) (*TicketPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	items, total, err := s.tickets.List(ctx, repository.TicketFilter{
		Query:  query,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &TicketPage{Total: total, Page: page, PageSize: pageSize, Items: items}, nil
}

// GetByID fetches full ticket detail by the internal numeric id.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*repository.TicketRow, error) {
	return s.tickets.GetByID(ctx, id)
}

// GetByNumber fetches full ticket detail by the human-readable number.
func (s *TicketService) GetByNumber(ctx context.Context, number string) (*repository.TicketRow, error) {
	return s.tickets.GetByNumber(ctx, number)
}

// UpdateStatus sets a ticket's status after validating the token and
// refreshes the update timestamp.
func (s *TicketService) UpdateStatus(ctx context.Context, actorID, ticketID int64, newStatus domain.TicketStatus) error {
	if !domain.KnownStatus(newStatus) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	row, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if row.Ticket.Status == newStatus {
		return nil
	}
	if err := s.tickets.UpdateStatus(ctx, ticketID, newStatus); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketStatusChanged,
		TicketID:     ticketID,
		TicketNumber: row.Ticket.Number,
		ActorID:      actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: row.Ticket.Status,
			NewStatus: newStatus,
		},
	})
	return nil
}

// AddMessage appends a conversation entry with optional attachments.
func (s *TicketService) AddMessage(ctx context.Context, ticketID, authorID int64, body string, internal bool, attachments []domain.Attachment) (*domain.TicketMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	row, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	msg := &domain.TicketMessage{
		TicketID:   ticketID,
		AuthorID:   authorID,
		Body:       strings.TrimSpace(body),
		IsInternal: internal,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	for _, att := range attachments {
		record := att
		record.MessageID = msg.ID
		if err := s.attachments.Create(ctx, &record); err != nil {
			return nil, err
		}
		msg.Attachments = append(msg.Attachments, record)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketMessageAdded,
		TicketID:     ticketID,
		TicketNumber: row.Ticket.Number,
		ActorID:      authorID,
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			IsInternal:  msg.IsInternal,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})
	return msg, nil
}

// Messages returns the conversation thread with attachments resolved.
func (s *TicketService) Messages(ctx context.Context, ticketID int64, includeInternal bool) ([]domain.TicketMessage, error) {
	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TicketMessage, 0, len(msgs))
	for i := range msgs {
		if msgs[i].IsInternal && !includeInternal {
			continue
		}
		attachments, err := s.attachments.ListByMessage(ctx, msgs[i].ID)
		if err != nil {
			return nil, err
		}
		msgs[i].Attachments = attachments
		out = append(out, msgs[i])
	}
	return out, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
