package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInsufficientBalance.Error() != "insufficient balance" {
		t.Errorf("ErrInsufficientBalance has unexpected message: %s", ErrInsufficientBalance.Error())
	}
	if ErrDuplicatePayment.Error() != "external payment already applied" {
		t.Errorf("ErrDuplicatePayment has unexpected message: %s", ErrDuplicatePayment.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"AmountOverflow", ErrAmountOverflow, 4002},
		{"InvalidUserID", ErrInvalidUserID, 4003},
		{"DuplicatePayment", ErrDuplicatePayment, 4004},
		{"DuplicateRequest", ErrDuplicateRequest, 4004},
		{"UnknownReason", ErrUnknownReason, 4007},
		{"UnknownActionKind", ErrUnknownActionKind, 4008},
		{"InvalidSignature", ErrInvalidSignature, 4013},
		{"ActionInFlight", ErrActionInFlight, 4230},
		{"StoreUnavailable", ErrStoreUnavailable, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("user-1", 5, 3, 0)

	expected := "insufficient balance for user user-1 (cash: 3, free: 0, requested: 5)"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("errors.Is(err, ErrInsufficientBalance) = false, want true")
	}
	if ErrorCode(fmt.Errorf("debit: %w", err)) != CodeInsufficientBalance {
		t.Errorf("wrapped InsufficientBalanceError should map to %d", CodeInsufficientBalance)
	}

	fields := err.LogFields()
	if fields["requested"] != int64(5) || fields["cash_credits"] != int64(3) {
		t.Errorf("LogFields() = %v, unexpected values", fields)
	}
}

func TestDuplicatePaymentError(t *testing.T) {
	payment := NewDuplicatePaymentError("paypal:T1")
	request := NewDuplicateRequestError("gate:create_referral_job:u1:abc")

	if !errors.Is(payment, ErrDuplicatePayment) {
		t.Errorf("payment duplicate should unwrap to ErrDuplicatePayment")
	}
	if !errors.Is(request, ErrDuplicateRequest) {
		t.Errorf("request duplicate should unwrap to ErrDuplicateRequest")
	}
	if !IsAlreadyApplied(payment) || !IsAlreadyApplied(request) {
		t.Errorf("IsAlreadyApplied should accept both duplicate kinds")
	}
	if IsAlreadyApplied(ErrInsufficientBalance) {
		t.Errorf("IsAlreadyApplied(ErrInsufficientBalance) = true, want false")
	}
	if payment.LogFields()["idempotency_key"] != "paypal:T1" {
		t.Errorf("LogFields() missing key: %v", payment.LogFields())
	}
}

func TestWebhookRejectedError(t *testing.T) {
	err := NewWebhookRejectedError("paypal", "T1", "signature mismatch", ErrInvalidSignature)

	expected := "webhook from paypal rejected (txn: T1, reason: signature mismatch): invalid webhook signature"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("errors.Is(err, ErrInvalidSignature) = false, want true")
	}
	if !IsWebhookRejectedError(fmt.Errorf("handle: %w", err)) {
		t.Errorf("IsWebhookRejectedError should see through wrapping")
	}

	noTxn := NewWebhookRejectedError("creem", "", "unknown provider", ErrUnknownProvider)
	if noTxn.Error() != "webhook from creem rejected (reason: unknown provider): unknown payment provider" {
		t.Errorf("Error() without txn = %s", noTxn.Error())
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("append ledger entry", cause)

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("StoreError should match ErrStoreUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Errorf("StoreError should unwrap to its cause")
	}
	if err.Error() != "append ledger entry: connection refused" {
		t.Errorf("Error() = %s", err.Error())
	}
}
