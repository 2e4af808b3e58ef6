package dto

// RegisterRequest corpo para POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Nome     string `json:"nome"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // padrão: solicitante
}

// LoginRequest corpo para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representação de usuário em respostas (sem hash de senha).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Role  string `json:"role"`
}

// LoginResponse token emitido no login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
