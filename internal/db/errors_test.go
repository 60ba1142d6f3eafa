package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/home-inventory/backend/internal/errs"
)

func TestTranslateErrorConcurrentClasses(t *testing.T) {
	tests := []struct {
		name     string
		sqlstate string
	}{
		{"serialization failure", "40001"},
		{"deadlock detected", "40P01"},
		{"lock not available", "55P03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &pgconn.PgError{Code: tt.sqlstate, Message: "driver-level detail"}
			out := TranslateError(in)
			if got := errs.CodeOf(out); got != errs.CodeConcurrentModification {
				t.Fatalf("TranslateError(%s) code = %s, want %s", tt.sqlstate, got, errs.CodeConcurrentModification)
			}
			if !errs.Retryable(out) {
				t.Errorf("TranslateError(%s) not retryable, want retryable", tt.sqlstate)
			}
			if !errors.As(out, new(*pgconn.PgError)) {
				t.Errorf("TranslateError(%s) lost the driver error from the chain", tt.sqlstate)
			}
		})
	}
}

func TestTranslateErrorPassthrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"unique violation", &pgconn.PgError{Code: "23505"}},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}},
		{"no rows", pgx.ErrNoRows},
		{"plain error", fmt.Errorf("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := TranslateError(tt.err)
			if !errors.Is(out, tt.err) {
				t.Fatalf("TranslateError() = %v, want unchanged %v", out, tt.err)
			}
			if tt.err != nil && errs.Retryable(out) {
				t.Errorf("TranslateError(%v) marked retryable, want not", tt.err)
			}
		})
	}
}
