// AngelaMos | 2026
// repository.go

package audit

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/core"
)

// Repository only ever inserts and reads; entries are never changed.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context) ([]EntryWithActor, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO logs (id, acao, tabela, registro_id, usuario_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING data`

	err := r.db.GetContext(ctx, &entry.CreatedAt, query,
		entry.ID,
		entry.Action,
		entry.Table,
		entry.RecordID,
		entry.AccountID,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]EntryWithActor, error) {
	query := `
		SELECT l.id, l.acao, l.tabela, l.registro_id, l.usuario_id, l.data,
		       u.nome AS actor_nome, u.email AS actor_email
		FROM logs l
		LEFT JOIN usuarios u ON u.id = l.usuario_id
		ORDER BY l.data DESC`

	var entries []EntryWithActor
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, nil
}
