// AngelaMos | 2026
// repository.go

package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/advotec/advotec-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByCaseFile(ctx context.Context, caseFileID string) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create fails with core.ErrNotFound when the case file does not exist.
func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO andamentos (id, descricao, ficha_id)
		VALUES ($1, $2, $3)
		RETURNING data`

	err := r.db.GetContext(ctx, &entry.Date, query,
		entry.ID,
		entry.Description,
		entry.CaseFileID,
	)
	if err != nil {
		err = core.TranslateError(err)
		if errors.Is(err, core.ErrForeignKey) {
			return fmt.Errorf("create progress entry: case file %s: %w", entry.CaseFileID, core.ErrNotFound)
		}
		return fmt.Errorf("create progress entry: %w", err)
	}

	return nil
}

func (r *repository) ListByCaseFile(
	ctx context.Context,
	caseFileID string,
) ([]Entry, error) {
	query := `
		SELECT id, descricao, data, ficha_id
		FROM andamentos
		WHERE ficha_id = $1
		ORDER BY data DESC`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, caseFileID); err != nil {
		return nil, fmt.Errorf("list progress entries: %w", err)
	}

	return entries, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM andamentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete progress entry: %w", err)
	}

	if err := core.RowsAffected(result); err != nil {
		return fmt.Errorf("delete progress entry: %w", err)
	}

	return nil
}
