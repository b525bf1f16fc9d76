package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_dedup_token"}

	if !isDuplicateKeyError(dup, "dedup_token") {
		t.Fatal("expected match on constraint name")
	}
	if !isDuplicateKeyError(dup, "DEDUP_TOKEN") {
		t.Fatal("constraint match must be case-insensitive")
	}
	if isDuplicateKeyError(dup, "username") {
		t.Fatal("unrelated constraint name matched")
	}

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "uq_appointments_dedup_token"}
	if isDuplicateKeyError(fk, "dedup_token") {
		t.Fatal("foreign key violation treated as duplicate key")
	}

	wrapped := fmt.Errorf("create appointment: %w", dup)
	if !isDuplicateKeyError(wrapped, "dedup_token") {
		t.Fatal("wrapped error must still match")
	}

	if isDuplicateKeyError(errors.New("plain error"), "dedup_token") {
		t.Fatal("non-postgres error matched")
	}
}

func TestIsForeignKeyError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "fk_prescription_items_medication"}

	if !isForeignKeyError(fk, "medication") {
		t.Fatal("expected match on constraint name")
	}
	if isForeignKeyError(fk, "prescription_id") {
		t.Fatal("unrelated constraint name matched")
	}

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "fk_prescription_items_medication"}
	if isForeignKeyError(dup, "medication") {
		t.Fatal("unique violation treated as foreign key violation")
	}
}
