package dto

import (
	"time"

	"gorm.io/datatypes"
)

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TestResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Settings    datatypes.JSON `json:"settings,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type QuestionResponse struct {
	ID            string         `json:"id"`
	QuestionIndex int            `json:"questionIndex"`
	Type          string         `json:"type"`
	Prompt        string         `json:"prompt"`
	Options       datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer datatypes.JSON `json:"correctAnswer,omitempty"`
	Points        int            `json:"points"`
	Rubric        datatypes.JSON `json:"rubric,omitempty"`
}

type HealthResponse struct {
	OK        bool   `json:"ok"`
	Env       string `json:"env,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ErrorResponse is the envelope every failing route answers with.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
