package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/api/dto"
	"github.com/codigo-hd/helpdesk-service/internal/auth"
	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/service"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("pageSize"), 50)
	result, err := h.service.List(c.Context(), page, pageSize, c.Query("q"))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	items := make([]dto.TicketSummary, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.NewTicketSummary(&result.Items[i], now))
	}
	return c.JSON(fiber.Map{
		"message": "Tickets obtidos",
		"data": dto.ListData[dto.TicketSummary]{
			Total:    result.Total,
			Page:     result.Page,
			PageSize: result.PageSize,
			Items:    items,
		},
	})
}

// GetByNumber GET /tickets/by-number/:number.
func (h *TicketsHandler) GetByNumber(c *fiber.Ctx) error {
	row, err := h.service.GetByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Ticket obtido",
		"data":    dto.NewTicketDetail(row, time.Now().UTC()),
	})
}

// GetByID GET /tickets/:id. Legacy numeric-id route kept for older clients.
func (h *TicketsHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	row, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Ticket obtido",
		"data":    dto.NewTicketDetail(row, time.Now().UTC()),
	})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Subject == "" || req.Description == "" || req.DepartmentID == 0 {
		return apperrors.NewValidationError("subject, description, departmentId required", nil)
	}

	// Customers always open tickets for themselves; agents and admins must
	// say who the ticket is for.
	customerID := principal.User.ID
	if principal.User.UserType != domain.UserTypeCustomer {
		if req.CustomerID == nil {
			return apperrors.NewValidationError("customerId required", nil)
		}
		customerID = *req.CustomerID
	}

	row, err := h.service.Create(c.Context(), service.TicketCreateInput{
		Subject:      req.Subject,
		Description:  req.Description,
		Priority:     domain.TicketPriority(req.Priority),
		DepartmentID: req.DepartmentID,
		CustomerID:   customerID,
		Category:     req.Category,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Ticket criado",
		"data":    dto.NewTicketDetail(row, time.Now().UTC()),
	})
}

// UpdateStatus PUT /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewStatus == "" {
		return apperrors.NewValidationError("newStatus required", nil)
	}

	if err := h.service.UpdateStatus(c.Context(), principal.User.ID, id, domain.TicketStatus(req.NewStatus)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Status atualizado"})
}

// Messages GET /tickets/:id/messages. Internal notes are visible to agents
// and admins only.
func (h *TicketsHandler) Messages(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	includeInternal := principal.User.UserType != domain.UserTypeCustomer
	msgs, err := h.service.Messages(c.Context(), id, includeInternal)
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{
		"message": "Mensagens obtidas",
		"data":    items,
	})
}

// AddMessage POST /tickets/:id/messages.
func (h *TicketsHandler) AddMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	var req dto.AddMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.IsInternal && principal.User.UserType == domain.UserTypeCustomer {
		return apperrors.NewForbidden("internal notes are staff only")
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		attachments = append(attachments, domain.Attachment{
			StorageKey: att.StorageKey,
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			SizeBytes:  att.SizeBytes,
		})
	}

	msg, err := h.service.AddMessage(c.Context(), id, principal.User.ID, req.Body, req.IsInternal, attachments)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Mensagem adicionada",
		"data":    dto.NewMessageResponse(msg),
	})
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
