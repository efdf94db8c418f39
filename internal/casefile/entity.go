// AngelaMos | 2026
// entity.go

package casefile

import (
	"time"
)

// CaseFile is a dated note opened against a client.
type CaseFile struct {
	ID          string    `db:"id"`
	Description string    `db:"descricao"`
	Date        time.Time `db:"data"`
	ClientID    string    `db:"cliente_id"`
}
