// AngelaMos | 2026
// entity.go

package account

import (
	"time"

	"github.com/advotec/advotec-api/internal/access"
)

type Account struct {
	ID           string      `db:"id"`
	Name         string      `db:"nome"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"senha"`
	Role         access.Role `db:"role"`
	Active       bool        `db:"ativo"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (a *Account) Principal() *access.Principal {
	return &access.Principal{
		ID:     a.ID,
		Name:   a.Name,
		Email:  a.Email,
		Role:   a.Role,
		Active: a.Active,
	}
}
