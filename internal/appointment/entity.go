// AngelaMos | 2026
// entity.go

package appointment

import (
	"time"
)

type Kind string

const (
	KindHearing  Kind = "AUDIENCIA"
	KindMeeting  Kind = "REUNIAO"
	KindDeadline Kind = "PRAZO"
)

// Appointment always belongs to the account that created it. No role can
// see another account's agenda.
type Appointment struct {
	ID          string    `db:"id"`
	Title       string    `db:"titulo"`
	Description *string   `db:"descricao"`
	DateTime    time.Time `db:"data_hora"`
	Kind        Kind      `db:"tipo"`
	OwnerID     string    `db:"usuario_id"`
	CreatedAt   time.Time `db:"created_at"`
}
