// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/core"
)

type RecordCounts struct {
	Accounts     int64 `db:"usuarios"     json:"usuarios"`
	Clients      int64 `db:"clientes"     json:"clientes"`
	CaseFiles    int64 `db:"fichas"       json:"fichas"`
	Progress     int64 `db:"andamentos"   json:"andamentos"`
	Appointments int64 `db:"compromissos" json:"compromissos"`
	AuditEntries int64 `db:"logs"         json:"logs"`
}

type RecordCounter interface {
	CountRecords(ctx context.Context) (*RecordCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) RecordCounter {
	return &repository{db: db}
}

func (r *repository) CountRecords(ctx context.Context) (*RecordCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM usuarios)     AS usuarios,
			(SELECT COUNT(*) FROM clientes)     AS clientes,
			(SELECT COUNT(*) FROM fichas)       AS fichas,
			(SELECT COUNT(*) FROM andamentos)   AS andamentos,
			(SELECT COUNT(*) FROM compromissos) AS compromissos,
			(SELECT COUNT(*) FROM logs)         AS logs`

	var counts RecordCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	return &counts, nil
}
