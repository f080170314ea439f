package loyalty

import "testing"

func TestNewTransactionPointsRules(t *testing.T) {
	cases := []struct {
		txType Type
		amount int64
		want   int64
	}{
		{TypePayment, 3_000, 30},
		{TypePayment, 99, 0},
		{TypeRecharge, 5_000, 25},
		{TypeRecharge, 199, 0},
		{TypeReward, 1_000, 0},
		{TypeRefund, 1_000, 0},
	}
	for _, tc := range cases {
		tx := NewTransaction(tc.txType, tc.amount, "card")
		if tx.Points != tc.want {
			t.Fatalf("%s of %d earned %d points, want %d", tc.txType, tc.amount, tx.Points, tc.want)
		}
	}
}

func TestNewTransactionStartsPending(t *testing.T) {
	tx := NewTransaction(TypeRecharge, 1_000, "card")
	if tx.Status != StatusPending {
		t.Fatalf("status = %s, want %s", tx.Status, StatusPending)
	}
	if tx.ID == "" || tx.Description == "" {
		t.Fatalf("expected id and description to be set: %+v", tx)
	}

	other := NewTransaction(TypeRecharge, 1_000, "card")
	if other.ID == tx.ID {
		t.Fatal("expected unique transaction ids")
	}
}

func TestNewWelcomeReward(t *testing.T) {
	tx := NewWelcomeReward(250)
	if tx.Type != TypeReward {
		t.Fatalf("type = %s, want %s", tx.Type, TypeReward)
	}
	if tx.Points != 250 || tx.Amount != 0 {
		t.Fatalf("points = %d amount = %d, want 250 and 0", tx.Points, tx.Amount)
	}
}
