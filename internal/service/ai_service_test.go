package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

func TestAnalyzeWithoutClientUsesHeuristic(t *testing.T) {
	depts := &fakeDepartmentRepo{dept: &domain.Department{ID: 2, Name: "Redes", IsActive: true}}
	svc := NewAIService(nil, "", depts, zap.NewNop())

	analysis, err := svc.Analyze(context.Background(), AIAnalyzeInput{
		Title:       "Internet down for everyone",
		Description: "The whole office lost connectivity.",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Source == nil || *analysis.Source != "heuristic" {
		t.Errorf("source = %v", analysis.Source)
	}
	if len(analysis.Suggestions) == 0 {
		t.Error("no suggestions produced")
	}
	if analysis.PriorityHint == nil || *analysis.PriorityHint != "Urgent" {
		t.Errorf("priorityHint = %v, want Urgent for an outage draft", analysis.PriorityHint)
	}
}

func TestHeuristicMatchesDepartmentByName(t *testing.T) {
	depts := &fakeDepartmentRepo{dept: &domain.Department{ID: 2, Name: "Redes", IsActive: true}}
	svc := NewAIService(nil, "", depts, zap.NewNop())

	analysis, err := svc.Analyze(context.Background(), AIAnalyzeInput{
		Title: "Problema no setor de redes",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.PredictedDepartmentID == nil || *analysis.PredictedDepartmentID != 2 {
		t.Errorf("predictedDepartmentId = %v", analysis.PredictedDepartmentID)
	}
	if analysis.Confidence == nil || *analysis.Confidence != 0.4 {
		t.Errorf("confidence = %v", analysis.Confidence)
	}
}

func TestResolveDepartmentDropsInventedName(t *testing.T) {
	svc := NewAIService(nil, "", activeDept(), zap.NewNop())

	invented := "Quantum Support"
	analysis := &AIAnalysis{PredictedDepartmentName: &invented, Confidence: float64Ptr(0.9)}
	svc.resolveDepartment(analysis, []domain.Department{{ID: 1, Name: "TI"}})

	if analysis.PredictedDepartmentName != nil || analysis.Confidence != nil {
		t.Errorf("invented department survived: %+v", analysis)
	}
}

func TestResolveDepartmentMatchesCaseInsensitive(t *testing.T) {
	svc := NewAIService(nil, "", activeDept(), zap.NewNop())

	name := "ti"
	analysis := &AIAnalysis{PredictedDepartmentName: &name}
	svc.resolveDepartment(analysis, []domain.Department{{ID: 1, Name: "TI"}})

	if analysis.PredictedDepartmentID == nil || *analysis.PredictedDepartmentID != 1 {
		t.Errorf("predictedDepartmentId = %v", analysis.PredictedDepartmentID)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around fence", "Here you go:\n```json\n{\"a\":1}\n```\nHope that helps.", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Errorf("extractJSON = %q, want %q", got, tc.want)
			}
		})
	}
}

func float64Ptr(f float64) *float64 {
	return &f
}
