package loyalty

import (
	"context"
	"errors"
	"time"
)

// ErrAccountNotFound indicates no loyalty account exists for the identifier.
var ErrAccountNotFound = errors.New("loyalty account not found")

// Account is the persisted loyalty state for one owner: the issued card plus
// balance, points and history. Card fields are immutable after creation;
// tier is derived from points on read, never stored.
type Account struct {
	ID          string
	OwnerID     string
	CardNumber  string
	CardCVC     string
	ExpiryMonth int
	ExpiryYear  int
	Balance     int64
	Points      int64
	CreatedAt   time.Time
}

// Snapshot reports balance and points immediately after a mutation.
type Snapshot struct {
	Balance int64
	Points  int64
}

// Store persists loyalty accounts and their transaction history.
//
// ApplyCredit and ApplyPayment settle the record as COMPLETED and mutate
// balance/points atomically; RecordFailed appends the record as FAILED
// without touching balances. History returns records newest first.
type Store interface {
	CreateAccount(ctx context.Context, account Account) error
	GetAccount(ctx context.Context, id string) (Account, error)
	GetAccountByOwner(ctx context.Context, ownerID string) (Account, error)
	ApplyCredit(ctx context.Context, accountID string, tx Transaction) (Snapshot, error)
	ApplyPayment(ctx context.Context, accountID string, tx Transaction) (Snapshot, error)
	RecordFailed(ctx context.Context, accountID string, tx Transaction) error
	History(ctx context.Context, accountID string) ([]Transaction, error)
}
