// AngelaMos | 2026
// repository.go

package appointment

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	ListByOwner(ctx context.Context, ownerID string) ([]Appointment, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Appointment) error {
	query := `
		INSERT INTO compromissos (id, titulo, descricao, data_hora, tipo, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &a.CreatedAt, query,
		a.ID,
		a.Title,
		a.Description,
		a.DateTime,
		a.Kind,
		a.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("create appointment: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Appointment, error) {
	query := `
		SELECT id, titulo, descricao, data_hora, tipo, usuario_id, created_at
		FROM compromissos
		WHERE usuario_id = $1
		ORDER BY data_hora ASC`

	appointments := []Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, ownerID); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return appointments, nil
}

// Delete removes the appointment only when ownerID owns it. Anything else
// reports core.ErrNotFound.
func (r *repository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM compromissos WHERE id = $1 AND usuario_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	if err := core.RowsAffected(result); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	return nil
}
