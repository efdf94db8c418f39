// AngelaMos | 2026
// entity.go

package audit

import (
	"time"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Table names as they appear in the "tabela" column.
const (
	TableAccount     = "Usuario"
	TableClient      = "Cliente"
	TableCaseFile    = "Ficha"
	TableProgress    = "Andamento"
	TableAppointment = "Compromisso"
)

// Entry is one immutable audit record.
type Entry struct {
	ID        string    `db:"id"`
	Action    Action    `db:"acao"`
	Table     string    `db:"tabela"`
	RecordID  string    `db:"registro_id"`
	AccountID string    `db:"usuario_id"`
	CreatedAt time.Time `db:"data"`
}

// EntryWithActor carries the acting account's name and email when that
// account still exists.
type EntryWithActor struct {
	Entry
	ActorName  *string `db:"actor_nome"`
	ActorEmail *string `db:"actor_email"`
}
