package account

import "time"

// Account is a registered Savora customer who owns a loyalty card.
type Account struct {
	ID           string
	Email        string
	Name         string
	PINHash      []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Credentials carries login data.
type Credentials struct {
	Email string
	PIN   string
}
