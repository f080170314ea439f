package auth

import "testing"

func TestSignAndVerifyRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	claims := map[string]any{"sub": "account-1", "ver": 2}

	token, err := SignHS256(claims, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := ParseAndVerifyHS256(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if parsed["sub"] != "account-1" {
		t.Fatalf("sub = %v, want account-1", parsed["sub"])
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignHS256(map[string]any{"sub": "account-1"}, []byte("secret-a"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("secret-b")); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := SignHS256(map[string]any{"sub": "account-1"}, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tampered := []byte(token)
	tampered[10] ^= 0x01
	if _, err := ParseAndVerifyHS256(string(tampered), secret); err == nil {
		t.Fatal("expected verification failure for tampered token")
	}

	if _, err := ParseAndVerifyHS256("not.a.token.at.all", secret); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
