package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coremocks "github.com/localhy/credit-ledger/mocks/port/core"
)

func TestParseReason(t *testing.T) {
	for _, s := range []string{"purchase", "posting_fee", "referral_reward", "admin_adjustment", "signup_bonus", "refund"} {
		r, err := ParseReason(s)
		require.NoError(t, err)
		assert.Equal(t, Reason(s), r)
	}

	_, err := ParseReason("bonus")
	assert.ErrorIs(t, err, errs.ErrUnknownReason)
}

func TestReasonValidateDelta(t *testing.T) {
	testCases := []struct {
		reason      Reason
		delta       int64
		expectedErr error
	}{
		{ReasonPurchase, 25, nil},
		{ReasonPurchase, -25, errs.ErrInvalidDelta},
		{ReasonPostingFee, -5, nil},
		{ReasonPostingFee, 5, errs.ErrInvalidDelta},
		{ReasonAdminAdjustment, -7, nil},
		{ReasonAdminAdjustment, 7, nil},
		{ReasonReferralReward, 10, nil},
		{ReasonSignupBonus, -1, errs.ErrInvalidDelta},
		{ReasonRefund, 5, nil},
		{ReasonPurchase, 0, errs.ErrInvalidDelta},
		{Reason("gift"), 5, errs.ErrUnknownReason},
	}

	for _, tc := range testCases {
		t.Run(string(tc.reason), func(t *testing.T) {
			err := tc.reason.ValidateDelta(tc.delta)
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestReasonDefaultPool(t *testing.T) {
	assert.Equal(t, PoolCash, ReasonPurchase.DefaultPool())
	assert.Equal(t, PoolCash, ReasonAdminAdjustment.DefaultPool())
	assert.Equal(t, PoolFree, ReasonReferralReward.DefaultPool())
	assert.Equal(t, PoolFree, ReasonSignupBonus.DefaultPool())
}

func TestMutationRequestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		req         MutationRequest
		expectedErr error
	}{
		{"Valid purchase", MutationRequest{UserID: "u1", Delta: 25, Reason: ReasonPurchase, ExternalPaymentID: "paypal:T1"}, nil},
		{"Admin pool override", MutationRequest{UserID: "u1", Delta: 5, Reason: ReasonAdminAdjustment, Pool: PoolFree}, nil},
		{"Pool override for purchase", MutationRequest{UserID: "u1", Delta: 5, Reason: ReasonPurchase, Pool: PoolFree}, errs.ErrInvalidRequest},
		{"Unknown pool", MutationRequest{UserID: "u1", Delta: 5, Reason: ReasonAdminAdjustment, Pool: "gold"}, errs.ErrInvalidRequest},
		{"Both keys", MutationRequest{UserID: "u1", Delta: 5, Reason: ReasonPurchase, ExternalPaymentID: "a", IdempotencyKey: "b"}, errs.ErrInvalidRequest},
		{"Key too long", MutationRequest{UserID: "u1", Delta: 5, Reason: ReasonPurchase, IdempotencyKey: strings.Repeat("k", MaxIdempotencyKeyLength+1)}, errs.ErrInvalidIdempotencyKey},
		{"Blank key", MutationRequest{UserID: "u1", Delta: 5, Reason: ReasonPurchase, IdempotencyKey: "  "}, errs.ErrInvalidIdempotencyKey},
		{"Missing user", MutationRequest{Delta: 5, Reason: ReasonPurchase}, errs.ErrInvalidUserID},
		{"Unknown reason", MutationRequest{UserID: "u1", Delta: 5, Reason: "gift"}, errs.ErrUnknownReason},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestNewLedgerEntry(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	account, err := RestoreAccount("u1", 10, 2, fixedTime, fixedTime, 0)
	require.NoError(t, err)
	req := MutationRequest{UserID: "u1", Delta: -5, Reason: ReasonPostingFee, IdempotencyKey: "gate:x", Reference: "job-1"}

	split, err := account.Apply(req.Delta, req.TargetPool(), mockTime)
	require.NoError(t, err)

	entry, err := NewLedgerEntry(account, split, req, mockTime)
	require.NoError(t, err)

	assert.Equal(t, int64(-5), entry.Delta)
	assert.Equal(t, int64(-3), entry.CashDelta)
	assert.Equal(t, int64(-2), entry.FreeDelta)
	assert.Nil(t, entry.ExternalPaymentID)
	require.NotNil(t, entry.IdempotencyKey)
	assert.Equal(t, "gate:x", *entry.IdempotencyKey)
	assert.Equal(t, Balance{CashCredits: 7}, entry.BalanceAfter())
	assert.Equal(t, fixedTime, entry.CreatedAt)
	assert.Equal(t, uuid.Version(7), entry.ID.Version())
}

func TestAuditReport(t *testing.T) {
	consistent := NewAuditReport("u1", Balance{CashCredits: 25}, LedgerTotals{Cash: 25, Entries: 1})
	assert.True(t, consistent.Consistent)

	drifted := NewAuditReport("u1", Balance{CashCredits: 50}, LedgerTotals{Cash: 25, Entries: 1})
	assert.False(t, drifted.Consistent)
	assert.Equal(t, Balance{CashCredits: 25}, drifted.Ledger)
}
