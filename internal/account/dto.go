// AngelaMos | 2026
// dto.go

package account

import (
	"strings"
)

type CreateAccountRequest struct {
	Nome  string `json:"nome"  validate:"required,min=3,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Senha string `json:"senha" validate:"required,min=6,max=128"`
	Role  string `json:"role"  validate:"required,oneof=MASTER ADVOGADO"`
}

// UpdateAccountRequest is a partial update; nil fields are left unchanged.
type UpdateAccountRequest struct {
	Nome  *string `json:"nome,omitempty"  validate:"omitempty,min=3,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role  *string `json:"role,omitempty"  validate:"omitempty,oneof=MASTER ADVOGADO"`
	Ativo *bool   `json:"ativo,omitempty"`
}

// UpdateProfileRequest changes the caller's own account. The password is
// only changed when both SenhaAtual and NovaSenha are present.
type UpdateProfileRequest struct {
	Nome       string `json:"nome"       validate:"required,min=3,max=255"`
	Email      string `json:"email"      validate:"required,email,max=255"`
	SenhaAtual string `json:"senhaAtual" validate:"omitempty,max=128"`
	NovaSenha  string `json:"novaSenha"  validate:"omitempty,min=6,max=128"`
}

func (r UpdateProfileRequest) ChangesPassword() bool {
	return r.SenhaAtual != "" && r.NovaSenha != ""
}

type AccountResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Ativo bool   `json:"ativo"`
}

type ListAccountsParams struct {
	Search string
	Role   string
}

func (p *ListAccountsParams) Normalize() {
	p.Search = strings.TrimSpace(p.Search)
	p.Role = strings.ToUpper(strings.TrimSpace(p.Role))
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:    a.ID,
		Nome:  a.Name,
		Email: a.Email,
		Role:  a.Role.String(),
		Ativo: a.Active,
	}
}

func ToAccountResponseList(accounts []Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToAccountResponse(&accounts[i]))
	}
	return responses
}
