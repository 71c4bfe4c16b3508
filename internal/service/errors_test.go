package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ConflictCause
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, CauseOverlap},
		{"foreign key", gorm.ErrForeignKeyViolated, CauseValidation},
		{"exclusion constraint", &pgconn.PgError{Code: "23P01"}, CauseOverlap},
		{"check constraint", &pgconn.PgError{Code: "23514", ConstraintName: "shifts_time_order"}, CauseValidation},
		{"wrapped duplicate", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), CauseOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyStoreError(tt.err)
			var conflict *ConflictError
			if !errors.As(got, &conflict) {
				t.Fatalf("expected ConflictError, got %v", got)
			}
			if conflict.Cause != tt.want {
				t.Errorf("cause = %s, want %s", conflict.Cause, tt.want)
			}
		})
	}
}

func TestClassifyStoreError_Passthrough(t *testing.T) {
	if classifyStoreError(nil) != nil {
		t.Error("nil should stay nil")
	}
	infra := errors.New("connection refused")
	if got := classifyStoreError(infra); !errors.Is(got, infra) {
		t.Errorf("infrastructure errors must pass through, got %v", got)
	}
}
