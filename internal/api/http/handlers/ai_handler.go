package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/api/dto"
	"github.com/codigo-hd/helpdesk-service/internal/service"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

// AIHandler exposes the advisory analysis endpoint. Its output is never
// written to a ticket automatically.
type AIHandler struct {
	ai *service.AIService
}

// NewAIHandler constructs handler.
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{ai: aiService}
}

// Analyze POST /ai/analyze.
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AIAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" && req.Description == "" {
		return apperrors.NewValidationError("title or description required", nil)
	}

	analysis, err := h.ai.Analyze(c.Context(), service.AIAnalyzeInput{
		Title:            req.Title,
		Description:      req.Description,
		DoneActions:      req.DoneActions,
		RejectedActions:  req.RejectedActions,
		PriorSuggestions: req.PriorSuggestions,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Análise concluída",
		"data":    analysis,
	})
}
