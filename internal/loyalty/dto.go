package loyalty

import "time"

// RechargeRequest captures user-provided data to load value onto the card.
type RechargeRequest struct {
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

// PayRequest captures an order payment from the card balance.
type PayRequest struct {
	Amount int64 `json:"amount"`
}

// ReceiptResponse is the API shape of a settled card operation.
type ReceiptResponse struct {
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	PointsEarned  int64  `json:"points_earned"`
	Balance       int64  `json:"balance"`
	Points        int64  `json:"points"`
	Tier          string `json:"tier"`
	Description   string `json:"description"`
}

// TransactionResponse is the API shape of one history record.
type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	Points        int64     `json:"points"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
}

// SummaryResponse is the API shape of the card overview.
type SummaryResponse struct {
	AccountID    string   `json:"account_id"`
	CardNumber   string   `json:"card_number"`
	Expiry       string   `json:"expiry"`
	Balance      int64    `json:"balance"`
	Points       int64    `json:"points"`
	Tier         string   `json:"tier"`
	Multiplier   float64  `json:"multiplier"`
	Benefits     []string `json:"benefits"`
	NextTier     string   `json:"next_tier,omitempty"`
	PointsToNext int64    `json:"points_to_next,omitempty"`
}
