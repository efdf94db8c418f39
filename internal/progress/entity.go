// AngelaMos | 2026
// entity.go

package progress

import (
	"time"
)

// Entry is one step recorded against a case file.
type Entry struct {
	ID          string    `db:"id"`
	Description string    `db:"descricao"`
	Date        time.Time `db:"data"`
	CaseFileID  string    `db:"ficha_id"`
}
