// AngelaMos | 2026
// repository.go

package client

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/access"
	"github.com/advotec/advotec-api/internal/core"
)

// Repository reads are always narrowed by an access.Scope. A record outside
// the scope is reported as core.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, client *Client) error
	Get(ctx context.Context, scope access.Scope, id string) (*Client, error)
	List(ctx context.Context, scope access.Scope) ([]Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
	CPFInUse(ctx context.Context, cpf, exceptID string) (bool, error)
	BirthdaysOn(ctx context.Context, scope access.Scope, month, day int) ([]Client, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const clientColumns = `id, nome, cpf, telefone, endereco, data_aniversario,
		       usuario_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, client *Client) error {
	query := `
		INSERT INTO clientes (id, nome, cpf, telefone, endereco, data_aniversario, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, client, query,
		client.ID,
		client.Name,
		client.CPF,
		client.Phone,
		client.Address,
		client.Birthday,
		client.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("create client: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) Get(
	ctx context.Context,
	scope access.Scope,
	id string,
) (*Client, error) {
	clause, args := scope.Clause("usuario_id", 2)
	query := fmt.Sprintf(`
		SELECT %s
		FROM clientes
		WHERE id = $1 AND %s`, clientColumns, clause)

	var client Client
	if err := r.db.GetContext(ctx, &client, query, append([]any{id}, args...)...); err != nil {
		return nil, fmt.Errorf("get client: %w", core.TranslateError(err))
	}

	return &client, nil
}

func (r *repository) List(ctx context.Context, scope access.Scope) ([]Client, error) {
	clause, args := scope.Clause("usuario_id", 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM clientes
		WHERE %s
		ORDER BY nome ASC`, clientColumns, clause)

	clients := []Client{}
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return clients, nil
}

func (r *repository) Update(ctx context.Context, client *Client) error {
	query := `
		UPDATE clientes
		SET nome = $2, cpf = $3, telefone = $4, endereco = $5,
		    data_aniversario = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &client.UpdatedAt, query,
		client.ID,
		client.Name,
		client.CPF,
		client.Phone,
		client.Address,
		client.Birthday,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", core.TranslateError(err))
	}

	if err := core.RowsAffected(result); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	return nil
}

// CPFInUse checks every client regardless of owner.
func (r *repository) CPFInUse(
	ctx context.Context,
	cpf, exceptID string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM clientes WHERE cpf = $1 AND id <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, cpf, exceptID); err != nil {
		return false, fmt.Errorf("check cpf in use: %w", err)
	}

	return exists, nil
}

func (r *repository) BirthdaysOn(
	ctx context.Context,
	scope access.Scope,
	month, day int,
) ([]Client, error) {
	clause, args := scope.Clause("usuario_id", 3)
	query := fmt.Sprintf(`
		SELECT %s
		FROM clientes
		WHERE data_aniversario IS NOT NULL
		  AND EXTRACT(MONTH FROM data_aniversario AT TIME ZONE 'UTC') = $1
		  AND EXTRACT(DAY FROM data_aniversario AT TIME ZONE 'UTC') = $2
		  AND %s
		ORDER BY nome ASC`, clientColumns, clause)

	clients := []Client{}
	if err := r.db.SelectContext(ctx, &clients, query, append([]any{month, day}, args...)...); err != nil {
		return nil, fmt.Errorf("list birthdays: %w", err)
	}

	return clients, nil
}
