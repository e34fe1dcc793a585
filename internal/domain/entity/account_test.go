package entity

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coremocks "github.com/localhy/credit-ledger/mocks/port/core"
)

func TestNewAccount(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid account is zeroed", func(t *testing.T) {
		account, err := NewAccount("0b6f5c2e-user", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "0b6f5c2e-user", account.UserID)
		assert.Equal(t, Balance{}, account.Balance())
		assert.Equal(t, fixedTime, account.CreatedAt)
		assert.Equal(t, uint64(0), account.EntryCount)
	})

	t.Run("Invalid user IDs", func(t *testing.T) {
		for _, id := range []string{"", "   ", " padded", strings.Repeat("x", MaxUserIDLength+1)} {
			account, err := NewAccount(id, mockTime)
			assert.ErrorIs(t, err, errs.ErrInvalidUserID, "id %q", id)
			assert.Nil(t, account)
		}
	})
}

func TestRestoreAccount(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	account, err := RestoreAccount("u1", 10, 2, now, now, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(10), account.CashCredits())
	assert.Equal(t, int64(2), account.FreeCredits())
	assert.Equal(t, int64(12), account.Balance().Total())

	_, err = RestoreAccount("u1", -1, 0, now, now, 0)
	assert.ErrorIs(t, err, errs.ErrNegativeBalance)
}

func TestAccountApply(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	testCases := []struct {
		name          string
		cash, free    int64
		delta         int64
		pool          CreditPool
		expectedSplit Split
		expectedCash  int64
		expectedFree  int64
		expectedErr   error
	}{
		{
			name: "Debit drains free before cash", cash: 10, free: 2, delta: -5,
			expectedSplit: Split{Cash: -3, Free: -2}, expectedCash: 7, expectedFree: 0,
		},
		{
			name: "Debit covered by free credits", cash: 10, free: 8, delta: -5,
			expectedSplit: Split{Free: -5}, expectedCash: 10, expectedFree: 3,
		},
		{
			name: "Debit of whole balance", cash: 3, free: 2, delta: -5,
			expectedSplit: Split{Cash: -3, Free: -2}, expectedCash: 0, expectedFree: 0,
		},
		{
			name: "Insufficient balance leaves account untouched", cash: 3, free: 0, delta: -5,
			expectedCash: 3, expectedFree: 0, expectedErr: errs.ErrInsufficientBalance,
		},
		{
			name: "Credit to cash", cash: 0, free: 0, delta: 25, pool: PoolCash,
			expectedSplit: Split{Cash: 25}, expectedCash: 25,
		},
		{
			name: "Credit to free", cash: 1, free: 1, delta: 3, pool: PoolFree,
			expectedSplit: Split{Free: 3}, expectedCash: 1, expectedFree: 4,
		},
		{
			name: "Zero delta", cash: 1, delta: 0, pool: PoolCash,
			expectedCash: 1, expectedErr: errs.ErrInvalidDelta,
		},
		{
			name: "Credit overflow", cash: math.MaxInt64 - 1, delta: 2, pool: PoolCash,
			expectedCash: math.MaxInt64 - 1, expectedErr: errs.ErrAmountOverflow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			account, err := RestoreAccount("u1", tc.cash, tc.free, fixedTime, fixedTime, 0)
			require.NoError(t, err)

			split, err := account.Apply(tc.delta, tc.pool, mockTime)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, uint64(0), account.EntryCount)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedSplit, split)
				assert.Equal(t, tc.delta, split.Delta())
				assert.Equal(t, uint64(1), account.EntryCount)
			}
			assert.Equal(t, tc.expectedCash, account.CashCredits())
			assert.Equal(t, tc.expectedFree, account.FreeCredits())
		})
	}
}

func TestAccountInsufficientBalanceCarriesContext(t *testing.T) {
	mockTime := coremocks.NewMockTimeProvider(t)
	account, err := RestoreAccount("u1", 3, 1, time.Time{}, time.Time{}, 0)
	require.NoError(t, err)

	_, err = account.Apply(-5, "", mockTime)

	var balanceErr *errs.InsufficientBalanceError
	require.True(t, errors.As(err, &balanceErr))
	assert.Equal(t, int64(5), balanceErr.Requested)
	assert.Equal(t, int64(3), balanceErr.CashCredits)
	assert.Equal(t, int64(1), balanceErr.FreeCredits)
}

func TestAccountApplySplit(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	account, err := RestoreAccount("u1", 10, 2, fixedTime, fixedTime, 0)
	require.NoError(t, err)

	split, err := account.Apply(-5, "", mockTime)
	require.NoError(t, err)

	require.NoError(t, account.ApplySplit(split.Negate(), mockTime))
	assert.Equal(t, Balance{CashCredits: 10, FreeCredits: 2}, account.Balance())

	err = account.ApplySplit(Split{Free: -3}, mockTime)
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	assert.Equal(t, Balance{CashCredits: 10, FreeCredits: 2}, account.Balance())
}

func TestBalanceCanAfford(t *testing.T) {
	assert.True(t, Balance{CashCredits: 3, FreeCredits: 2}.CanAfford(5))
	assert.False(t, Balance{CashCredits: 3}.CanAfford(5))
	assert.True(t, Balance{}.CanAfford(0))
}
