// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/advotec/advotec-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateProfile(
		ctx context.Context,
		id, name, email string,
		passwordHash *string,
	) (*Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListAccountsParams) ([]Account, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const accountColumns = `id, nome, email, senha, role, ativo, created_at, updated_at`

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO usuarios (id, nome, email, senha, role, ativo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, account, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Active,
	)
	if err != nil {
		return fmt.Errorf("create account: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM usuarios WHERE id = $1`

	var account Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, fmt.Errorf("get account: %w", core.TranslateError(err))
	}

	return &account, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM usuarios WHERE email = $1`

	var account Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, fmt.Errorf("get account by email: %w", core.TranslateError(err))
	}

	return &account, nil
}

func (r *repository) Update(ctx context.Context, account *Account) error {
	query := `
		UPDATE usuarios
		SET nome = $2, email = $3, role = $4, ativo = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &account.UpdatedAt, query,
		account.ID,
		account.Name,
		account.Email,
		account.Role,
		account.Active,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", core.TranslateError(err))
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE usuarios
		SET senha = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := core.RowsAffected(result); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// UpdateProfile writes the self-service fields in one statement. It never
// touches role or ativo, and an account deactivated since it was read yields
// core.ErrNotFound. A nil passwordHash keeps the stored hash.
func (r *repository) UpdateProfile(
	ctx context.Context,
	id, name, email string,
	passwordHash *string,
) (*Account, error) {
	query := `
		UPDATE usuarios
		SET nome = $2, email = $3, senha = COALESCE($4, senha), updated_at = NOW()
		WHERE id = $1 AND ativo
		RETURNING ` + accountColumns

	var account Account
	err := r.db.GetContext(ctx, &account, query, id, name, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", core.TranslateError(err))
	}

	return &account, nil
}

// Delete removes the account row. Accounts that still own clients are
// protected by the foreign key and yield core.ErrForeignKey.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", core.TranslateError(err))
	}

	if err := core.RowsAffected(result); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListAccountsParams,
) ([]Account, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR nome ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM usuarios
		WHERE %s
		ORDER BY nome ASC`,
		accountColumns, strings.Join(conditions, " AND "))

	var accounts []Account
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
