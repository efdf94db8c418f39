// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"

	"github.com/advotec/advotec-api/internal/core"
)

// monthWindow caps every monthly rollup.
const monthWindow = 6

type Repository interface {
	CountClients(ctx context.Context) (int, error)
	CountCaseFiles(ctx context.Context) (int, error)
	CaseFilesPerMonth(ctx context.Context) ([]MonthCount, error)
	ClientsPerMonth(ctx context.Context) ([]MonthCount, error)
	ClientsPerOwner(ctx context.Context) ([]OwnerCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CountClients(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM clientes`); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func (r *repository) CountCaseFiles(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM fichas`); err != nil {
		return 0, fmt.Errorf("count case files: %w", err)
	}
	return n, nil
}

func (r *repository) CaseFilesPerMonth(ctx context.Context) ([]MonthCount, error) {
	return r.perMonth(ctx, "fichas", "data")
}

func (r *repository) ClientsPerMonth(ctx context.Context) ([]MonthCount, error) {
	return r.perMonth(ctx, "clientes", "created_at")
}

// perMonth only ever receives the fixed table and column names above.
func (r *repository) perMonth(
	ctx context.Context,
	table, column string,
) ([]MonthCount, error) {
	query := fmt.Sprintf(`
		SELECT EXTRACT(MONTH FROM %[2]s AT TIME ZONE 'UTC')::int AS mes,
		       COUNT(*) AS total
		FROM %[1]s
		GROUP BY mes
		ORDER BY mes DESC
		LIMIT %[3]d`, table, column, monthWindow)

	counts := []MonthCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count %s per month: %w", table, err)
	}
	return counts, nil
}

func (r *repository) ClientsPerOwner(ctx context.Context) ([]OwnerCount, error) {
	query := `
		SELECT c.usuario_id, u.nome, COUNT(*) AS total
		FROM clientes c
		LEFT JOIN usuarios u ON u.id = c.usuario_id
		GROUP BY c.usuario_id, u.nome
		ORDER BY total DESC, c.usuario_id ASC`

	counts := []OwnerCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("rank owners: %w", err)
	}
	return counts, nil
}
