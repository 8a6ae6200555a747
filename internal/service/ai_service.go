package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
)

// AIAnalyzeInput carries the ticket draft plus prior suggestion feedback.
type AIAnalyzeInput struct {
	Title            string
	Description      string
	DoneActions      []string
	RejectedActions  []string
	PriorSuggestions []string
}

// AIAnalysis is advisory output only; nothing here is ever written to a
// ticket without the user confirming it.
type AIAnalysis struct {
	Suggestions             []string `json:"suggestions"`
	PredictedDepartmentID   *int64   `json:"predictedDepartmentId,omitempty"`
	PredictedDepartmentName *string  `json:"predictedDepartmentName,omitempty"`
	Confidence              *float64 `json:"confidence,omitempty"`
	PriorityHint            *string  `json:"priorityHint,omitempty"`
	Rationale               *string  `json:"rationale,omitempty"`
	Source                  *string  `json:"source,omitempty"`
	NextAction              *string  `json:"nextAction,omitempty"`
	FollowUpQuestions       []string `json:"followUpQuestions,omitempty"`
}

// AIService produces troubleshooting suggestions for a ticket draft. When no
// model client is configured, or the model call fails, it falls back to a
// deterministic keyword heuristic so the endpoint always answers.
type AIService struct {
	client      *genai.Client
	model       string
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

// NewAIService builds the service. client may be nil.
func NewAIService(client *genai.Client, model string, departments repository.DepartmentRepository, logger *zap.Logger) *AIService {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &AIService{client: client, model: model, departments: departments, logger: logger}
}

// Analyze returns suggestions for the draft.
func (s *AIService) Analyze(ctx context.Context, input AIAnalyzeInput) (*AIAnalysis, error) {
	depts, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.client == nil {
		return s.heuristicAnalysis(input, depts), nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	content := genai.NewContentFromText(s.buildPrompt(input, depts), genai.RoleUser)
	resp, err := s.client.Models.GenerateContent(ctx, s.model, []*genai.Content{content}, nil)
	if err != nil {
		s.logger.Warn("ai analysis call failed, using heuristic", zap.Error(err))
		return s.heuristicAnalysis(input, depts), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return s.heuristicAnalysis(input, depts), nil
	}

	raw := extractJSON(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	var analysis AIAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.logger.Warn("ai analysis unparseable, using heuristic", zap.Error(err))
		return s.heuristicAnalysis(input, depts), nil
	}
	analysis.Source = strPtr("model")
	s.resolveDepartment(&analysis, depts)
	return &analysis, nil
}

func (s *AIService) buildPrompt(input AIAnalyzeInput, depts []domain.Department) string {
	names := make([]string, 0, len(depts))
	for _, d := range depts {
		names = append(names, d.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpdesk triage assistant. Analyze this ticket draft.\n\n")
	fmt.Fprintf(&b, "Title: %s\nDescription: %s\n", input.Title, input.Description)
	if len(input.DoneActions) > 0 {
		fmt.Fprintf(&b, "Actions the user already tried: %s\n", strings.Join(input.DoneActions, "; "))
	}
	if len(input.RejectedActions) > 0 {
		fmt.Fprintf(&b, "Suggestions the user rejected: %s\n", strings.Join(input.RejectedActions, "; "))
	}
	if len(input.PriorSuggestions) > 0 {
		fmt.Fprintf(&b, "Suggestions already given (do not repeat): %s\n", strings.Join(input.PriorSuggestions, "; "))
	}
	fmt.Fprintf(&b, "\nKnown departments: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, `
Return JSON only:
{
  "suggestions": ["step 1", "step 2"],
  "predictedDepartmentName": "one of the known departments or null",
  "confidence": 0.0,
  "priorityHint": "Urgent|High|Normal|Low",
  "rationale": "one sentence",
  "nextAction": "one short imperative",
  "followUpQuestions": ["question"]
}`)
	return b.String()
}

// heuristicAnalysis is the offline fallback: keyword scan over the draft.
func (s *AIService) heuristicAnalysis(input AIAnalyzeInput, depts []domain.Department) *AIAnalysis {
	text := strings.ToLower(input.Title + " " + input.Description)

	hint := string(domain.TicketPriorityNormal)
	for _, kw := range []string{"down", "outage", "urgent", "everyone", "production"} {
		if strings.Contains(text, kw) {
			hint = string(domain.TicketPriorityUrgent)
			break
		}
	}

	analysis := &AIAnalysis{
		Suggestions: []string{
			"Restart the affected application and try to reproduce the issue",
			"Capture a screenshot or the exact error message for the agent",
		},
		PriorityHint: &hint,
		Source:       strPtr("heuristic"),
		FollowUpQuestions: []string{
			"Since when does the problem occur?",
			"Does it affect only you or other people as well?",
		},
	}
	for _, d := range depts {
		if strings.Contains(text, strings.ToLower(d.Name)) {
			id := d.ID
			name := d.Name
			conf := 0.4
			analysis.PredictedDepartmentID = &id
			analysis.PredictedDepartmentName = &name
			analysis.Confidence = &conf
			break
		}
	}
	return analysis
}

func (s *AIService) resolveDepartment(analysis *AIAnalysis, depts []domain.Department) {
	if analysis.PredictedDepartmentName == nil {
		return
	}
	for _, d := range depts {
		if strings.EqualFold(d.Name, *analysis.PredictedDepartmentName) {
			id := d.ID
			analysis.PredictedDepartmentID = &id
			return
		}
	}
	// Model invented a department; drop the prediction rather than mislead.
	analysis.PredictedDepartmentName = nil
	analysis.Confidence = nil
}

// extractJSON strips markdown code fences the model may wrap around JSON.
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+7:]
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

func strPtr(s string) *string {
	return &s
}
