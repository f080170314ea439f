package loyalty

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func newTestAccount(t *testing.T, store Store) Account {
	t.Helper()
	account := Account{
		ID:         uuid.NewString(),
		OwnerID:    uuid.NewString(),
		CardNumber: "4242424242424242",
		CardCVC:    "123",
	}
	if err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func TestMemoryStoreApplyCredit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	account := newTestAccount(t, store)

	snap, err := store.ApplyCredit(ctx, account.ID, NewTransaction(TypeRecharge, 5_000, "card"))
	if err != nil {
		t.Fatalf("apply credit: %v", err)
	}
	if snap.Balance != 5_000 || snap.Points != 25 {
		t.Fatalf("snapshot = %+v, want balance 5000 points 25", snap)
	}

	records, err := store.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 || records[0].Status != StatusCompleted {
		t.Fatalf("unexpected history: %+v", records)
	}
}

func TestMemoryStoreApplyPaymentGuardsBalance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	account := newTestAccount(t, store)

	if _, err := store.ApplyPayment(ctx, account.ID, NewTransaction(TypePayment, 500, "card")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	SeedAccount(store, account.ID, 1_000, 0)
	snap, err := store.ApplyPayment(ctx, account.ID, NewTransaction(TypePayment, 300, "card"))
	if err != nil {
		t.Fatalf("apply payment: %v", err)
	}
	if snap.Balance != 700 || snap.Points != 3 {
		t.Fatalf("snapshot = %+v, want balance 700 points 3", snap)
	}
}

func TestMemoryStoreRecordFailedLeavesBalance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	account := newTestAccount(t, store)
	SeedAccount(store, account.ID, 1_000, 10)

	if err := store.RecordFailed(ctx, account.ID, NewTransaction(TypePayment, 300, "card")); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	got, err := store.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Balance != 1_000 || got.Points != 10 {
		t.Fatalf("balances changed by failed record: %+v", got)
	}

	records, _ := store.History(ctx, account.ID)
	if len(records) != 1 || records[0].Status != StatusFailed {
		t.Fatalf("unexpected history: %+v", records)
	}
}

func TestMemoryStoreHistoryNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	account := newTestAccount(t, store)

	first := NewTransaction(TypeRecharge, 1_000, "card")
	second := NewTransaction(TypeRecharge, 2_000, "card")
	if _, err := store.ApplyCredit(ctx, account.ID, first); err != nil {
		t.Fatalf("first credit: %v", err)
	}
	if _, err := store.ApplyCredit(ctx, account.ID, second); err != nil {
		t.Fatalf("second credit: %v", err)
	}

	records, err := store.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Fatalf("history not newest first: %+v", records)
	}
}

func TestMemoryStoreUnknownAccount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.GetAccount(ctx, "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.GetAccountByOwner(ctx, "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected not found by owner, got %v", err)
	}
}
