// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Senha string `json:"senha" validate:"required,min=6,max=128"`
}

type RegisterRequest struct {
	Nome  string `json:"nome"  validate:"required,min=3,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Senha string `json:"senha" validate:"required,min=6,max=128"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Ativo bool   `json:"ativo"`
}
