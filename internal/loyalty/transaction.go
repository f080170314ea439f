package loyalty

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type enumerates the kinds of loyalty card transactions.
type Type string

const (
	TypeRecharge Type = "RECHARGE"
	TypePayment  Type = "PAYMENT"
	TypeReward   Type = "REWARD"
	TypeRefund   Type = "REFUND"
)

// Status is the lifecycle state of a transaction. A record is created
// PENDING and settles exactly once to COMPLETED or FAILED; both are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Transaction is a single card ledger record. A refund is a distinct new
// record, never a state transition of the original.
type Transaction struct {
	ID            string
	Type          Type
	Amount        int64
	Points        int64
	Status        Status
	PaymentMethod string
	Description   string
	Date          time.Time
}

// Accrual divisors per transaction type. Accrual is flat: the tier
// multiplier is display-only and does not feed this formula.
const (
	paymentPointsDivisor  = 100
	rechargePointsDivisor = 200
)

// NewTransaction builds a PENDING record for the given type and amount.
// Amount validity is the caller's responsibility.
func NewTransaction(txType Type, amount int64, paymentMethod string) Transaction {
	return Transaction{
		ID:            uuid.NewString(),
		Type:          txType,
		Amount:        amount,
		Points:        pointsFor(txType, amount),
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		Description:   descriptionFor(txType, amount),
		Date:          time.Now().UTC(),
	}
}

// NewWelcomeReward builds the signup bonus record. REWARD records earn no
// points from their amount, so the bonus is set on the record directly.
func NewWelcomeReward(points int64) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Type:        TypeReward,
		Amount:      0,
		Points:      points,
		Status:      StatusPending,
		Description: fmt.Sprintf("Welcome bonus of %d points", points),
		Date:        time.Now().UTC(),
	}
}

func pointsFor(txType Type, amount int64) int64 {
	switch txType {
	case TypePayment:
		return amount / paymentPointsDivisor
	case TypeRecharge:
		return amount / rechargePointsDivisor
	default:
		return 0
	}
}

func descriptionFor(txType Type, amount int64) string {
	switch txType {
	case TypeRecharge:
		return fmt.Sprintf("Card recharge of %d", amount)
	case TypePayment:
		return fmt.Sprintf("Order payment of %d", amount)
	case TypeRefund:
		return fmt.Sprintf("Refund of %d", amount)
	default:
		return fmt.Sprintf("Loyalty reward of %d", amount)
	}
}
