package ledger_test

import (
	"testing"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta_Income(t *testing.T) {
	d, err := ledger.Delta(domain.TypeIncome, decimal.RequireFromString("25.50"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("25.50")))
}

func TestDelta_Expense(t *testing.T) {
	d, err := ledger.Delta(domain.TypeExpense, decimal.RequireFromString("30.00"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("-30.00")))
}

func TestDelta_TransferRejected(t *testing.T) {
	_, err := ledger.Delta(domain.TypeTransfer, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDelta_NonPositiveAmounts(t *testing.T) {
	for _, amt := range []string{"0", "-0.01", "-100"} {
		_, err := ledger.Delta(domain.TypeIncome, decimal.RequireFromString(amt))
		assert.ErrorIs(t, err, apperrors.ErrValidation, "amount %s", amt)
	}
}

func TestDelta_UnknownType(t *testing.T) {
	_, err := ledger.Delta(domain.TransactionType("REFUND"), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReverse_UndoesDelta(t *testing.T) {
	amount := decimal.RequireFromString("42.42")
	d, err := ledger.Delta(domain.TypeExpense, amount)
	require.NoError(t, err)
	r, err := ledger.Reverse(domain.TypeExpense, amount)
	require.NoError(t, err)
	assert.True(t, d.Add(r).IsZero())
}
