package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	// ADMIN cannot self-register.
	Role string `json:"role" binding:"omitempty,oneof=DOCENTE STUDENTE"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateTestRequest accepts an empty body: both fields fall back to defaults.
type CreateTestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
