package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance   = 4001
	CodeInvalidAmount         = 4002
	CodeInvalidUserID         = 4003
	CodeDuplicatePayment      = 4004
	CodeConstraintViolation   = 4005
	CodeInvalidDelta          = 4006
	CodeUnknownReason         = 4007
	CodeUnknownActionKind     = 4008
	CodeInvalidIdempotencyKey = 4009
	CodeInvalidWebhookPayload = 4010
	CodeUnknownProvider       = 4011
	CodePaymentNotCompleted   = 4012
	CodeInvalidSignature      = 4013
	CodeUnauthorized          = 4014
	CodeForbidden             = 4015
	CodeInvalidRequest        = 4016
	CodeNotFound              = 4040
	CodeActionInFlight        = 4230

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeCompensationFailed = 5001
	CodeStoreUnavailable   = 5030
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a debit would push the balance below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a payment amount cannot be converted to credits
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidUserID is returned when the user ID is empty or malformed
	ErrInvalidUserID = errors.New("invalid user ID")

	// ErrInvalidDelta is returned when a delta is zero or has the wrong sign for its reason
	ErrInvalidDelta = errors.New("invalid credit delta")

	// ErrUnknownReason is returned when a ledger reason is not one of the allowed values
	ErrUnknownReason = errors.New("unknown ledger reason")

	// ErrNegativeBalance is returned when an account would be restored with a negative pool
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrAmountOverflow is returned when a credit amount does not fit the balance type
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrDuplicatePayment is returned when an external payment ID was already applied
	ErrDuplicatePayment = errors.New("external payment already applied")

	// ErrDuplicateRequest is returned when an idempotency key was already applied
	ErrDuplicateRequest = errors.New("request already applied")

	// ErrInvalidIdempotencyKey is returned when an idempotency key is missing or too long
	ErrInvalidIdempotencyKey = errors.New("invalid idempotency key")

	// ErrAccountNotFound is returned by repositories when no balance row exists yet
	ErrAccountNotFound = errors.New("account not found")

	// ErrEntryNotFound is returned when the requested ledger entry doesn't exist
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrUnknownActionKind is returned when a paid action has no configured price
	ErrUnknownActionKind = errors.New("unknown action kind")

	// ErrActionInFlight is returned when the same paid action is already being confirmed
	ErrActionInFlight = errors.New("action is already in progress")

	// ErrCompensationFailed is returned when a failed action could not be refunded
	ErrCompensationFailed = errors.New("action failed and the charge could not be refunded")

	// ErrInvalidWebhookPayload is returned when a provider notification cannot be decoded
	ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

	// ErrUnknownProvider is returned when the webhook names an unsupported payment provider
	ErrUnknownProvider = errors.New("unknown payment provider")

	// ErrPaymentNotCompleted is returned when a verified notification is not a completed payment
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrInvalidSignature is returned when a webhook signature is missing or does not match
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrUnauthorized is returned when the caller identity cannot be established
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrLockHeld is returned by lock repositories when the key is held by someone else
	ErrLockHeld = errors.New("lock is held by another operation")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrStoreUnavailable is returned when the ledger store cannot be reached or keeps failing
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicatePayment), errors.Is(err, ErrDuplicateRequest):
		return CodeDuplicatePayment
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrInvalidDelta):
		return CodeInvalidDelta
	case errors.Is(err, ErrUnknownReason):
		return CodeUnknownReason
	case errors.Is(err, ErrUnknownActionKind):
		return CodeUnknownActionKind
	case errors.Is(err, ErrInvalidIdempotencyKey):
		return CodeInvalidIdempotencyKey
	case errors.Is(err, ErrInvalidWebhookPayload):
		return CodeInvalidWebhookPayload
	case errors.Is(err, ErrUnknownProvider):
		return CodeUnknownProvider
	case errors.Is(err, ErrPaymentNotCompleted):
		return CodePaymentNotCompleted
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEntryNotFound):
		return CodeNotFound
	case errors.Is(err, ErrActionInFlight), errors.Is(err, ErrLockHeld):
		return CodeActionInFlight
	case errors.Is(err, ErrCompensationFailed):
		return CodeCompensationFailed
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternalServer
	}
}

// IsAlreadyApplied reports whether err means the mutation was applied by an earlier request
func IsAlreadyApplied(err error) bool {
	return errors.Is(err, ErrDuplicatePayment) || errors.Is(err, ErrDuplicateRequest)
}

// InsufficientBalanceError carries the balance a debit was rejected against
type InsufficientBalanceError struct {
	UserID      string
	Requested   int64
	CashCredits int64
	FreeCredits int64
}

// Error implements the error interface for InsufficientBalanceError
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s (cash: %d, free: %d, requested: %d)",
		e.UserID, e.CashCredits, e.FreeCredits, e.Requested)
}

// Is matches ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "insufficient_balance",
		"user_id":      e.UserID,
		"requested":    e.Requested,
		"cash_credits": e.CashCredits,
		"free_credits": e.FreeCredits,
		"error_code":   CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new InsufficientBalanceError
func NewInsufficientBalanceError(userID string, requested, cash, free int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		UserID:      userID,
		Requested:   requested,
		CashCredits: cash,
		FreeCredits: free,
	}
}

// DuplicatePaymentError represents a mutation whose idempotency key was already used
type DuplicatePaymentError struct {
	Key string
	Err error
}

// Error implements the error interface for DuplicatePaymentError
func (e *DuplicatePaymentError) Error() string {
	return fmt.Sprintf("mutation %s already applied: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *DuplicatePaymentError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *DuplicatePaymentError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "duplicate_payment",
		"idempotency_key": e.Key,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewDuplicatePaymentError wraps ErrDuplicatePayment for an external payment ID
func NewDuplicatePaymentError(externalPaymentID string) *DuplicatePaymentError {
	return &DuplicatePaymentError{Key: externalPaymentID, Err: ErrDuplicatePayment}
}

// NewDuplicateRequestError wraps ErrDuplicateRequest for an idempotency key
func NewDuplicateRequestError(key string) *DuplicatePaymentError {
	return &DuplicatePaymentError{Key: key, Err: ErrDuplicateRequest}
}

// WebhookRejectedError represents a webhook delivery that was refused before any state change
type WebhookRejectedError struct {
	Provider      string
	TransactionID string
	Reason        string
	Err           error
}

// Error implements the error interface for WebhookRejectedError
func (e *WebhookRejectedError) Error() string {
	if e.TransactionID != "" {
		return fmt.Sprintf("webhook from %s rejected (txn: %s, reason: %s): %v",
			e.Provider, e.TransactionID, e.Reason, e.Err)
	}
	return fmt.Sprintf("webhook from %s rejected (reason: %s): %v", e.Provider, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *WebhookRejectedError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *WebhookRejectedError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "webhook_rejected",
		"provider":       e.Provider,
		"transaction_id": e.TransactionID,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewWebhookRejectedError creates a new WebhookRejectedError
func NewWebhookRejectedError(provider, transactionID, reason string, err error) *WebhookRejectedError {
	return &WebhookRejectedError{
		Provider:      provider,
		TransactionID: transactionID,
		Reason:        reason,
		Err:           err,
	}
}

// IsWebhookRejectedError checks if an error is a WebhookRejectedError
func IsWebhookRejectedError(err error) bool {
	var target *WebhookRejectedError
	return errors.As(err, &target)
}

// StoreError wraps a persistence failure with the operation that produced it
type StoreError struct {
	Operation string
	Err       error
}

// Error implements the error interface for StoreError
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Is matches ErrStoreUnavailable
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *StoreError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "store_error",
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": CodeStoreUnavailable,
	}
}

// NewStoreError creates a new StoreError
func NewStoreError(operation string, err error) *StoreError {
	return &StoreError{Operation: operation, Err: err}
}
