package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/api/dto"
	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/service"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

// UsersHandler exposes admin-only user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("pageSize"), 50)
	result, err := h.users.List(c.Context(), page, pageSize, c.Query("q"))
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.NewUserResponse(&result.Items[i]))
	}
	return c.JSON(fiber.Map{
		"message": "Usuários obtidos",
		"data": dto.ListData[dto.UserResponse]{
			Total:    result.Total,
			Page:     result.Page,
			PageSize: result.PageSize,
			Items:    items,
		},
	})
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := h.users.Create(c.Context(), service.UserCreateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		UserType:       domain.UserType(req.UserType),
		IsActive:       isActive,
		Department:     req.Department,
		Specialization: req.Specialization,
		Level:          req.Level,
		IsAvailable:    req.IsAvailable,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Usuário criado",
		"data":    dto.NewUserResponse(user),
	})
}
