// AngelaMos | 2026
// entity.go

package client

import (
	"time"

	"github.com/advotec/advotec-api/internal/casefile"
)

// Client is a person the practice represents. OwnerID is the account that
// registered it and decides who may see it.
type Client struct {
	ID        string     `db:"id"`
	Name      string     `db:"nome"`
	CPF       string     `db:"cpf"`
	Phone     string     `db:"telefone"`
	Address   *string    `db:"endereco"`
	Birthday  *time.Time `db:"data_aniversario"`
	OwnerID   string     `db:"usuario_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type ClientWithCaseFiles struct {
	Client
	CaseFiles []casefile.CaseFile
}
