package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation")
	}
	if ConstraintName(err) != "users_email_key" {
		t.Fatalf("unexpected constraint %q", ConstraintName(err))
	}
	if IsForeignKeyViolation(err) {
		t.Fatalf("did not expect fk violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a violation")
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(pgx.ErrNoRows) || !IsNoRows(fmt.Errorf("wrap: %w", sql.ErrNoRows)) {
		t.Fatalf("expected no rows")
	}
	if IsNoRows(errors.New("other")) {
		t.Fatalf("unexpected no rows")
	}
}
