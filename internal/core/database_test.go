// AngelaMos | 2026
// database_test.go

package core

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type rowsResult int64

func (r rowsResult) LastInsertId() (int64, error) { return 0, nil }
func (r rowsResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestTranslateError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", fmt.Errorf("get: %w", sql.ErrNoRows), ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "usuarios_email_key"}, ErrDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKey},
		{"other pg", &pgconn.PgError{Code: "42P01"}, nil},
		{"other", other, other},
	}

	for _, tt := range tests {
		got := TranslateError(tt.in)
		switch {
		case tt.in == nil:
			if got != nil {
				t.Errorf("%s: got %v", tt.name, got)
			}
		case tt.want == nil:
			if errors.Is(got, ErrNotFound) || errors.Is(got, ErrDuplicateKey) || errors.Is(got, ErrForeignKey) {
				t.Errorf("%s: unexpectedly translated to %v", tt.name, got)
			}
		default:
			if !errors.Is(got, tt.want) {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			}
		}
	}
}

func TestRowsAffected(t *testing.T) {
	if err := RowsAffected(rowsResult(0)); !errors.Is(err, ErrNotFound) {
		t.Errorf("zero rows: got %v", err)
	}
	if err := RowsAffected(rowsResult(1)); err != nil {
		t.Errorf("one row: got %v", err)
	}
}
