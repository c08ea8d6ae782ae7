// Package ledger holds the pure balance-delta rule shared by the ledger service
// and the reconciliation service, so the sign convention lives in exactly one place.
package ledger

import (
	"fmt"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Delta maps a transaction's type and amount to its signed effect on the owning
// account's balance.
//
// INCOME  -> +amount
// EXPENSE -> -amount
// TRANSFER -> error: a single transfer-typed row has no defined single-account
// effect. Transfers must be persisted as two linked income/expense legs, so a
// transfer type reaching this function is a caller bug or invalid input.
func Delta(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	switch txnType {
	case domain.TypeIncome:
		return amount, nil
	case domain.TypeExpense:
		return amount.Neg(), nil
	case domain.TypeTransfer:
		return decimal.Zero, fmt.Errorf("%w: a transfer has no single-account balance effect; create paired legs instead", apperrors.ErrValidation)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}
}

// Reverse returns the delta that undoes a previously applied transaction.
func Reverse(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	d, err := Delta(txnType, amount)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Neg(), nil
}
