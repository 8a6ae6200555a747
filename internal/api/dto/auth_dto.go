package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse returns the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DepartmentResponse is the department picker representation.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AIAnalyzeRequest payload.
type AIAnalyzeRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	DoneActions      []string `json:"doneActions,omitempty"`
	RejectedActions  []string `json:"rejectedActions,omitempty"`
	PriorSuggestions []string `json:"priorSuggestions,omitempty"`
}
