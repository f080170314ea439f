package loyalty

import (
	"errors"
	"testing"
)

const validCard = "4242424242424242"

func TestValidatePaymentFormatCheckedFirst(t *testing.T) {
	// Both the format and the balance are bad; format must win.
	if err := ValidatePayment("1234567890123456", 5_000, 0); !errors.Is(err, ErrInvalidCardFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	if err := ValidatePayment("4242", 500, 1_000); !errors.Is(err, ErrInvalidCardFormat) {
		t.Fatalf("expected format error for short number, got %v", err)
	}
}

func TestValidatePaymentInsufficiency(t *testing.T) {
	if err := ValidatePayment(validCard, 500, 100); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestValidatePaymentBounds(t *testing.T) {
	if err := ValidatePayment(validCard, 50, 100); !errors.Is(err, ErrAmountOutOfBounds) {
		t.Fatalf("expected out of bounds below minimum, got %v", err)
	}
	if err := ValidatePayment(validCard, 1_000_001, 2_000_000); !errors.Is(err, ErrAmountOutOfBounds) {
		t.Fatalf("expected out of bounds above maximum, got %v", err)
	}
	if err := ValidatePayment(validCard, MinTransactionAmount, MinTransactionAmount); err != nil {
		t.Fatalf("minimum boundary should pass, got %v", err)
	}
	if err := ValidatePayment(validCard, MaxTransactionAmount, MaxTransactionAmount); err != nil {
		t.Fatalf("maximum boundary should pass, got %v", err)
	}
}
