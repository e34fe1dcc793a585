package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// Unique indexes whose violations mean "already applied"
const (
	ExternalPaymentIndex = "idx_ledger_entries_external_payment_id"
	IdempotencyKeyIndex  = "idx_ledger_entries_idempotency_key"
	ReferralJobChargeIdx = "idx_referral_jobs_charge_entry_id"
	CashNonNegativeCheck = "chk_credit_accounts_cash_non_negative"
	FreeNonNegativeCheck = "chk_credit_accounts_free_non_negative"
)

// ErrorClassifier provides methods to classify database errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	if c.IsDuplicateKeyError(err) {
		return DuplicateKeyError
	}
	if c.IsLockError(err) {
		return LockError
	}
	if c.IsConnectionError(err) {
		return ConnectionError
	}
	if c.IsTransientError(err) {
		return TransientError
	}
	if c.IsConstraintError(err) {
		return ConstraintError
	}

	return ""
}

// IsDuplicateKeyError checks if the error is a unique violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsLockError checks if the transaction lost a lock or serialization conflict
func (c *ErrorClassifier) IsLockError(err error) bool {
	pgErr, ok := asPgError(err)
	if !ok {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return true
	}
	return false
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := asPgError(err); ok {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgErr.Code == pgerrcode.AdminShutdown ||
			pgErr.Code == pgerrcode.CannotConnectNow
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "unexpected eof")
}

// IsTransientError reports whether rerunning the whole transaction may succeed
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return c.IsLockError(err) || c.IsConnectionError(err)
}

// IsConstraintError checks if the error is a check, foreign key or not-null violation
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	pgErr, ok := asPgError(err)
	if !ok {
		return false
	}
	return pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)
}

// ConstraintName returns the violated constraint or index, if the driver reported one
func (c *ErrorClassifier) ConstraintName(err error) string {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// storeError wraps a driver failure so callers see ErrStoreUnavailable while
// the retry loop can still inspect the underlying PgError.
func storeError(operation string, err error) error {
	return errs.NewStoreError(operation, err)
}
