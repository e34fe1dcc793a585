package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier(t *testing.T) {
	classifier := NewErrorClassifier()

	testCases := []struct {
		name       string
		err        error
		expected   ErrorType
		transient  bool
		constraint string
	}{
		{"Nil", nil, "", false, ""},
		{"Unique violation", &pgconn.PgError{Code: "23505", ConstraintName: IdempotencyKeyIndex}, DuplicateKeyError, false, IdempotencyKeyIndex},
		{"Serialization failure", &pgconn.PgError{Code: "40001"}, LockError, true, ""},
		{"Deadlock", &pgconn.PgError{Code: "40P01"}, LockError, true, ""},
		{"Lock timeout", &pgconn.PgError{Code: "55P03"}, LockError, true, ""},
		{"Check violation", &pgconn.PgError{Code: "23514", ConstraintName: CashNonNegativeCheck}, ConstraintError, false, CashNonNegativeCheck},
		{"Connection failure", &pgconn.PgError{Code: "08006"}, ConnectionError, true, ""},
		{"Connection reset", errors.New("read tcp: connection reset by peer"), ConnectionError, true, ""},
		{"Wrapped serialization failure", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), LockError, true, ""},
		{"Cancelled", context.Canceled, "", false, ""},
		{"Syntax error", &pgconn.PgError{Code: "42601"}, "", false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.err))
			assert.Equal(t, tc.transient, classifier.IsTransientError(tc.err))
			assert.Equal(t, tc.constraint, classifier.ConstraintName(tc.err))
		})
	}
}
