package card

import (
	"testing"
	"time"
)

func TestGenerateProducesValidIdentities(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		identity := Generate(now)
		if len(identity.Number) != NumberLength {
			t.Fatalf("number length = %d, want %d", len(identity.Number), NumberLength)
		}
		if !ValidNumber(identity.Number) {
			t.Fatalf("generated number %s fails Luhn", identity.Number)
		}
		if len(identity.CVC) != 3 {
			t.Fatalf("cvc = %q, want 3 digits", identity.CVC)
		}
		if identity.ExpiryYear != 2029 || identity.ExpiryMonth != int(time.March) {
			t.Fatalf("expiry = %02d/%d, want 03/2029", identity.ExpiryMonth, identity.ExpiryYear)
		}
	}
}

func TestValidNumberKnownValue(t *testing.T) {
	if !ValidNumber("4242424242424242") {
		t.Fatal("expected known-valid number to pass")
	}
}

func TestValidNumberRejectsMutations(t *testing.T) {
	const valid = "4242424242424242"
	for i := 0; i < len(valid); i++ {
		mutated := []byte(valid)
		mutated[i] = byte('0' + (int(mutated[i]-'0')+1)%10)
		if ValidNumber(string(mutated)) {
			t.Fatalf("single-digit mutation at %d still passes: %s", i, mutated)
		}
	}
}

func TestValidNumberRejectsMalformed(t *testing.T) {
	for _, number := range []string{"", "4242", "42424242424242424242", "424242424242424a"} {
		if ValidNumber(number) {
			t.Fatalf("expected %q to be rejected", number)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format("4242424242424242"); got != "4242 4242 4242 4242" {
		t.Fatalf("Format = %q", got)
	}
}

func TestMask(t *testing.T) {
	if got := Mask("4242424242424242"); got != "•••• •••• •••• 4242" {
		t.Fatalf("Mask = %q", got)
	}
}

func TestExpiryRendering(t *testing.T) {
	identity := Identity{ExpiryMonth: 3, ExpiryYear: 2029}
	if got := identity.Expiry(); got != "03/29" {
		t.Fatalf("Expiry = %q, want 03/29", got)
	}
}
