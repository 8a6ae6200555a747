package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/api/dto"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
)

// DepartmentsHandler exposes the department picker endpoint.
type DepartmentsHandler struct {
	departments repository.DepartmentRepository
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments repository.DepartmentRepository) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// List GET /departments. Active, non-deleted only, sorted by name.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	depts, err := h.departments.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		items = append(items, dto.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return c.JSON(fiber.Map{
		"message": "Departamentos obtidos",
		"data":    items,
	})
}
