package loyalty

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/savora/savora_loyalty/internal/card"
	"github.com/savora/savora_loyalty/internal/notification"
	"github.com/savora/savora_loyalty/internal/tier"
)

type fakeProvider struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *fakeProvider) Attempt(_ context.Context, _ Charge) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

type testNotifier struct {
	mu   sync.Mutex
	last notification.Message
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = msg
	return nil
}

func openTestAccount(t *testing.T, svc *Service, welcomePoints int64) Account {
	t.Helper()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	account, err := svc.Open(context.Background(), uuid.NewString(), card.Generate(now), welcomePoints)
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	return account
}

func TestRechargeAccruesPoints(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)

	receipt, err := svc.Recharge(ctx, account.ID, 5_000, "card")
	if err != nil {
		t.Fatalf("recharge: %v", err)
	}
	if receipt.Balance != 5_000 || receipt.Points != 25 {
		t.Fatalf("receipt = %+v, want balance 5000 points 25", receipt)
	}
	if receipt.Transaction.Status != StatusCompleted {
		t.Fatalf("status = %s, want %s", receipt.Transaction.Status, StatusCompleted)
	}
}

func TestRechargeThenPayScenario(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)

	if _, err := svc.Recharge(ctx, account.ID, 10_000, "card"); err != nil {
		t.Fatalf("recharge: %v", err)
	}
	receipt, err := svc.Pay(ctx, account.ID, 3_000)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}

	if receipt.Balance != 7_000 {
		t.Fatalf("balance = %d, want 7000", receipt.Balance)
	}
	// floor(10000/200) + floor(3000/100) = 50 + 30
	if receipt.Points != 80 {
		t.Fatalf("points = %d, want 80", receipt.Points)
	}

	records, err := svc.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Type != TypePayment || records[1].Type != TypeRecharge {
		t.Fatalf("history not newest first: %+v", records)
	}
	for _, record := range records {
		if record.Status != StatusCompleted {
			t.Fatalf("expected completed records, got %+v", record)
		}
	}
}

func TestPayInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	store := NewMemoryStore()
	provider := &fakeProvider{}
	svc := NewService(store, provider, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)

	if _, err := svc.Pay(ctx, account.ID, 3_000); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	// Validation failures abort before settlement: no record, no charge.
	if provider.calls != 0 {
		t.Fatalf("provider called %d times, want 0", provider.calls)
	}
	records, _ := svc.History(ctx, account.ID)
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %+v", records)
	}
	got, _ := store.GetAccount(ctx, account.ID)
	if got.Balance != 0 || got.Points != 0 {
		t.Fatalf("state changed: %+v", got)
	}
}

func TestPayOutOfBounds(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)
	SeedAccount(store, account.ID, 2_000_000, 0)

	if _, err := svc.Pay(ctx, account.ID, 50); !errors.Is(err, ErrAmountOutOfBounds) {
		t.Fatalf("expected out of bounds below minimum, got %v", err)
	}
	if _, err := svc.Pay(ctx, account.ID, 1_000_001); !errors.Is(err, ErrAmountOutOfBounds) {
		t.Fatalf("expected out of bounds above maximum, got %v", err)
	}
}

func TestProviderDeclineRecordsFailure(t *testing.T) {
	store := NewMemoryStore()
	provider := &fakeProvider{err: errors.New("gateway unavailable")}
	svc := NewService(store, provider, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)
	SeedAccount(store, account.ID, 5_000, 10)

	receipt, err := svc.Pay(ctx, account.ID, 1_000)
	if !errors.Is(err, ErrProviderDeclined) {
		t.Fatalf("expected provider declined, got %v", err)
	}
	if receipt.Transaction.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", receipt.Transaction.Status, StatusFailed)
	}
	if receipt.Balance != 5_000 || receipt.Points != 10 {
		t.Fatalf("receipt = %+v, want unchanged balances", receipt)
	}

	records, _ := svc.History(ctx, account.ID)
	if len(records) != 1 || records[0].Status != StatusFailed {
		t.Fatalf("expected one failed record, got %+v", records)
	}
}

func TestRechargeProviderDecline(t *testing.T) {
	store := NewMemoryStore()
	provider := &fakeProvider{err: errors.New("gateway unavailable")}
	svc := NewService(store, provider, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)

	if _, err := svc.Recharge(ctx, account.ID, 2_000, "card"); !errors.Is(err, ErrProviderDeclined) {
		t.Fatalf("expected provider declined, got %v", err)
	}
	got, _ := store.GetAccount(ctx, account.ID)
	if got.Balance != 0 || got.Points != 0 {
		t.Fatalf("state changed by failed recharge: %+v", got)
	}
}

func TestOpenCreditsWelcomeReward(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, nil)
	account := openTestAccount(t, svc, 250)

	if account.Points != 250 {
		t.Fatalf("points = %d, want 250", account.Points)
	}
	records, err := svc.History(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 || records[0].Type != TypeReward {
		t.Fatalf("expected one reward record, got %+v", records)
	}
}

func TestTierUpgradeNotification(t *testing.T) {
	store := NewMemoryStore()
	notifier := &testNotifier{}
	svc := NewService(store, nil, notifier)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)
	SeedAccount(store, account.ID, 0, 4_990)

	if _, err := svc.Recharge(ctx, account.ID, 5_000, "card"); err != nil {
		t.Fatalf("recharge: %v", err)
	}

	if notifier.last.Kind != notification.KindTierUpgrade {
		t.Fatalf("expected tier upgrade notification, got %+v", notifier.last)
	}
}

func TestSummaryMasksCardNumber(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)
	SeedAccount(store, account.ID, 1_000, 6_000)

	summary, err := svc.Summarize(ctx, account.ID)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.HasPrefix(summary.MaskedNumber, "•••• •••• •••• ") {
		t.Fatalf("card number not masked: %q", summary.MaskedNumber)
	}
	if summary.Tier != tier.Premium {
		t.Fatalf("tier = %s, want %s", summary.Tier, tier.Premium)
	}
	if summary.NextTier != tier.Gold || summary.PointsToNext != 9_000 {
		t.Fatalf("next tier = %s in %d points, want GOLD in 9000", summary.NextTier, summary.PointsToNext)
	}
}

func TestConcurrentPaymentsNeverOverdraw(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()
	account := openTestAccount(t, svc, 0)
	SeedAccount(store, account.ID, 1_000, 0)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Pay(ctx, account.ID, 300); err == nil {
				mu.Lock()
				completed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if completed != 3 {
		t.Fatalf("completed payments = %d, want 3", completed)
	}
	got, _ := store.GetAccount(ctx, account.ID)
	if got.Balance != 100 {
		t.Fatalf("balance = %d, want 100", got.Balance)
	}
}
