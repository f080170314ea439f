package loyalty

import (
	"errors"

	"github.com/savora/savora_loyalty/internal/card"
)

var (
	// ErrInvalidCardFormat indicates the card number is not a valid
	// 16-digit Luhn number.
	ErrInvalidCardFormat = errors.New("card number is not a valid 16-digit number")

	// ErrInsufficientBalance indicates the payment exceeds the card balance.
	ErrInsufficientBalance = errors.New("insufficient card balance")

	// ErrAmountOutOfBounds indicates the amount falls outside the allowed
	// per-transaction range.
	ErrAmountOutOfBounds = errors.New("amount is outside the allowed transaction range")

	// ErrProviderDeclined indicates the settlement provider rejected the
	// charge after a pending record was created.
	ErrProviderDeclined = errors.New("payment provider declined the transaction")
)

// Per-transaction payment bounds.
const (
	MinTransactionAmount int64 = 100
	MaxTransactionAmount int64 = 1_000_000
)

// ValidatePayment runs the payment preconditions in order, short-circuiting
// on the first failure: card format, then balance sufficiency, then amount
// bounds. Used only on the payment path; recharges have no sufficiency
// concept.
func ValidatePayment(cardNumber string, amount, balance int64) error {
	if !card.ValidNumber(cardNumber) {
		return ErrInvalidCardFormat
	}
	if amount > balance {
		return ErrInsufficientBalance
	}
	if amount < MinTransactionAmount || amount > MaxTransactionAmount {
		return ErrAmountOutOfBounds
	}
	return nil
}
