package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/savora/savora_loyalty/internal/card"
	"github.com/savora/savora_loyalty/internal/loyalty"
)

// WelcomeBonusPoints is credited as a REWARD record when an account is
// registered.
const WelcomeBonusPoints = 250

// Service manages account lifecycle. Registration also issues the loyalty
// card: the ledger account is provisioned once here and owned by the
// customer for its lifetime.
type Service struct {
	repo  Repository
	cards *loyalty.Service
}

// NewService creates an account service.
func NewService(repo Repository, cards *loyalty.Service) *Service {
	return &Service{repo: repo, cards: cards}
}

// RegisterInput captures data required to open an account.
type RegisterInput struct {
	Email string
	Name  string
	PIN   string
}

// Register creates the account, hashes the PIN and provisions the loyalty
// card with the welcome bonus.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Account, loyalty.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return Account{}, loyalty.Account{}, errors.New("a valid email is required")
	}
	if len(input.PIN) < 4 {
		return Account{}, loyalty.Account{}, errors.New("PIN must be at least 4 digits")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, loyalty.Account{}, err
	}

	now := time.Now().UTC()
	acct := Account{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		PINHash:   hash,
		CreatedAt: now,
		LastLogin: now,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, loyalty.Account{}, err
	}

	cardAccount, err := s.cards.Open(ctx, acct.ID, card.Generate(now), WelcomeBonusPoints)
	if err != nil {
		return Account{}, loyalty.Account{}, err
	}

	return acct, cardAccount, nil
}

// Authenticate verifies credentials and records the login time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	acct, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acct.PINHash, []byte(creds.PIN)); err != nil {
		return Account{}, errors.New("invalid PIN")
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, acct.ID, now); err != nil {
		return Account{}, err
	}
	acct.LastLogin = now

	return acct, nil
}
