// AngelaMos | 2026
// repository.go

package casefile

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/advotec/advotec-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, file *CaseFile) error
	ListByClient(ctx context.Context, clientID string) ([]CaseFile, error)
	ListByClients(ctx context.Context, clientIDs []string) (map[string][]CaseFile, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, file *CaseFile) error {
	query := `
		INSERT INTO fichas (id, descricao, cliente_id)
		VALUES ($1, $2, $3)
		RETURNING data`

	err := r.db.GetContext(ctx, &file.Date, query,
		file.ID,
		file.Description,
		file.ClientID,
	)
	if err != nil {
		return fmt.Errorf("create case file: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) ListByClient(
	ctx context.Context,
	clientID string,
) ([]CaseFile, error) {
	query := `
		SELECT id, descricao, data, cliente_id
		FROM fichas
		WHERE cliente_id = $1
		ORDER BY data DESC`

	files := []CaseFile{}
	if err := r.db.SelectContext(ctx, &files, query, clientID); err != nil {
		return nil, fmt.Errorf("list case files: %w", err)
	}

	return files, nil
}

// ListByClients loads the case files of several clients in one query,
// keyed by client id, newest first within each client.
func (r *repository) ListByClients(
	ctx context.Context,
	clientIDs []string,
) (map[string][]CaseFile, error) {
	grouped := make(map[string][]CaseFile, len(clientIDs))
	if len(clientIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, descricao, data, cliente_id
		FROM fichas
		WHERE cliente_id IN (?)
		ORDER BY data DESC`, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("build case file query: %w", err)
	}

	var files []CaseFile
	if err := r.db.SelectContext(ctx, &files, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list case files by clients: %w", err)
	}

	for _, f := range files {
		grouped[f.ClientID] = append(grouped[f.ClientID], f)
	}

	return grouped, nil
}
