package database

import (
	"errors"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps transaction-level database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError wraps a driver error in a StoreError. Errors that already carry a
// domain meaning pass through unchanged.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var storeErr *errs.StoreError
	if errors.As(err, &storeErr) || errs.IsAlreadyApplied(err) || errors.Is(err, errs.ErrConstraintViolation) {
		return err
	}

	return errs.NewStoreError(operation, err)
}

// IsTransient reports whether the whole transaction may be rerun
func (m *ErrorMapper) IsTransient(err error) bool {
	return m.classifier.IsTransientError(err)
}
