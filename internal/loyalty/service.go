package loyalty

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/savora/savora_loyalty/internal/card"
	"github.com/savora/savora_loyalty/internal/notification"
	"github.com/savora/savora_loyalty/internal/tier"
)

// Service is the loyalty ledger. It owns balance, points and history for
// each account and applies recharge/payment operations through a two-phase
// pending/settle flow: build a PENDING record, attempt settlement with the
// provider, then either apply the mutation and append the record COMPLETED
// or append it FAILED and leave balances untouched.
type Service struct {
	store    Store
	provider Provider
	notifier notification.Notifier
	locks    sync.Map // account id -> *sync.Mutex
}

// NewService constructs the ledger service. A nil provider falls back to the
// always-approving static provider.
func NewService(store Store, provider Provider, notifier notification.Notifier) *Service {
	if provider == nil {
		provider = StaticProvider{}
	}
	return &Service{store: store, provider: provider, notifier: notifier}
}

// Receipt reports the settled outcome of a card operation together with the
// resulting account state.
type Receipt struct {
	Transaction Transaction
	Balance     int64
	Points      int64
	Tier        tier.Tier
}

// Summary is the card overview shown on the loyalty screen. The full card
// number never leaves the service after creation.
type Summary struct {
	AccountID    string
	MaskedNumber string
	Expiry       string
	Balance      int64
	Points       int64
	Tier         tier.Tier
	Multiplier   float64
	Benefits     []string
	NextTier     tier.Tier
	PointsToNext int64
}

// Open provisions the loyalty account for a new owner with a zeroed balance
// and, when welcomePoints is positive, credits the signup bonus as a REWARD
// record.
func (s *Service) Open(ctx context.Context, ownerID string, identity card.Identity, welcomePoints int64) (Account, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return Account{}, err
	}

	account := Account{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		CardNumber:  identity.Number,
		CardCVC:     identity.CVC,
		ExpiryMonth: identity.ExpiryMonth,
		ExpiryYear:  identity.ExpiryYear,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return Account{}, err
	}

	if welcomePoints > 0 {
		snap, err := s.store.ApplyCredit(ctx, account.ID, NewWelcomeReward(welcomePoints))
		if err != nil {
			return Account{}, err
		}
		account.Points = snap.Points
	}

	return account, nil
}

// ByOwner returns the loyalty account owned by the given user.
func (s *Service) ByOwner(ctx context.Context, ownerID string) (Account, error) {
	return s.store.GetAccountByOwner(ctx, ownerID)
}

// Recharge loads value onto the card. The pending record is settled with the
// provider before the balance moves; on provider failure the record is kept
// FAILED and ErrProviderDeclined is returned with balances unchanged.
func (s *Service) Recharge(ctx context.Context, accountID string, amount int64, paymentMethod string) (Receipt, error) {
	if amount <= 0 {
		return Receipt{}, fmt.Errorf("amount must be positive")
	}

	mu := s.lock(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return Receipt{}, err
	}

	record := NewTransaction(TypeRecharge, amount, paymentMethod)

	if err := s.settle(ctx, record); err != nil {
		record.Status = StatusFailed
		if rerr := s.store.RecordFailed(ctx, accountID, record); rerr != nil {
			return Receipt{}, rerr
		}
		return s.receipt(record, Snapshot{Balance: account.Balance, Points: account.Points}),
			fmt.Errorf("%w: %v", ErrProviderDeclined, err)
	}

	snap, err := s.store.ApplyCredit(ctx, accountID, record)
	if err != nil {
		return Receipt{}, err
	}
	record.Status = StatusCompleted

	s.notifyTierChange(ctx, account.OwnerID, account.Points, snap.Points)

	return s.receipt(record, snap), nil
}

// Pay spends card balance on an order. Validation failures abort before any
// record exists; provider failures leave a FAILED record behind. Both are
// reported through the returned error.
func (s *Service) Pay(ctx context.Context, accountID string, amount int64) (Receipt, error) {
	mu := s.lock(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return Receipt{}, err
	}

	if err := ValidatePayment(account.CardNumber, amount, account.Balance); err != nil {
		return Receipt{}, err
	}

	record := NewTransaction(TypePayment, amount, "card")

	if err := s.settle(ctx, record); err != nil {
		record.Status = StatusFailed
		if rerr := s.store.RecordFailed(ctx, accountID, record); rerr != nil {
			return Receipt{}, rerr
		}
		return s.receipt(record, Snapshot{Balance: account.Balance, Points: account.Points}),
			fmt.Errorf("%w: %v", ErrProviderDeclined, err)
	}

	snap, err := s.store.ApplyPayment(ctx, accountID, record)
	if err != nil {
		return Receipt{}, err
	}
	record.Status = StatusCompleted

	s.notifyTierChange(ctx, account.OwnerID, account.Points, snap.Points)

	return s.receipt(record, snap), nil
}

// History returns the account's transactions newest first.
func (s *Service) History(ctx context.Context, accountID string) ([]Transaction, error) {
	return s.store.History(ctx, accountID)
}

// Rewards returns the benefit list of the tier implied by current points.
func (s *Service) Rewards(ctx context.Context, accountID string) ([]string, error) {
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return tier.Benefits(account.Points), nil
}

// Summarize builds the card overview for display, with the number masked.
func (s *Service) Summarize(ctx context.Context, accountID string) (Summary, error) {
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return Summary{}, err
	}

	level := tier.Current(account.Points)
	summary := Summary{
		AccountID:    account.ID,
		MaskedNumber: card.Mask(account.CardNumber),
		Expiry:       fmt.Sprintf("%02d/%02d", account.ExpiryMonth, account.ExpiryYear%100),
		Balance:      account.Balance,
		Points:       account.Points,
		Tier:         level.Tier,
		Multiplier:   level.Multiplier,
		Benefits:     level.Benefits,
	}
	if next, needed, ok := tier.Next(account.Points); ok {
		summary.NextTier = next.Tier
		summary.PointsToNext = needed
	}
	return summary, nil
}

func (s *Service) settle(ctx context.Context, record Transaction) error {
	return s.provider.Attempt(ctx, Charge{
		TransactionID: record.ID,
		Type:          record.Type,
		Amount:        record.Amount,
		PaymentMethod: record.PaymentMethod,
	})
}

func (s *Service) receipt(record Transaction, snap Snapshot) Receipt {
	return Receipt{
		Transaction: record,
		Balance:     snap.Balance,
		Points:      snap.Points,
		Tier:        tier.Current(snap.Points).Tier,
	}
}

func (s *Service) notifyTierChange(ctx context.Context, ownerID string, before, after int64) {
	if s.notifier == nil {
		return
	}
	from := tier.Current(before)
	to := tier.Current(after)
	if from.Tier == to.Tier {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindTierUpgrade,
		Destination: ownerID,
		Body:        fmt.Sprintf("Your Savora card moved from %s to %s", from.Tier, to.Tier),
	})
}

// lock returns the per-account mutex, creating it on first use. Operations
// on one account are serialized across the settlement wait so overlapping
// recharge/pay calls cannot interleave their balance mutations; accounts do
// not contend with each other.
func (s *Service) lock(accountID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(accountID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
