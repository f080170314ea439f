package loyalty

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists loyalty accounts and transactions in PostgreSQL.
// Mutations lock the account row so balance and history stay consistent
// under concurrent API calls.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `id, owner_id, card_number, card_cvc, expiry_month, expiry_year, balance, points, created_at`

// CreateAccount inserts a loyalty account record.
func (s *PostgresStore) CreateAccount(ctx context.Context, account Account) error {
	accountID, err := uuid.Parse(account.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(account.OwnerID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO loyalty_accounts (`+accountColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		accountID, ownerID, account.CardNumber, account.CardCVC,
		account.ExpiryMonth, account.ExpiryYear, account.Balance, account.Points,
		account.CreatedAt.UTC())
	return err
}

// GetAccount fetches a loyalty account by identifier.
func (s *PostgresStore) GetAccount(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM loyalty_accounts WHERE id = $1`, accountID)
	return scanAccount(row)
}

// GetAccountByOwner fetches the loyalty account owned by the given user.
func (s *PostgresStore) GetAccountByOwner(ctx context.Context, ownerID string) (Account, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM loyalty_accounts WHERE owner_id = $1`, owner)
	return scanAccount(row)
}

// ApplyCredit settles a credit record, increasing balance and points inside
// a single database transaction.
func (s *PostgresStore) ApplyCredit(ctx context.Context, accountID string, record Transaction) (Snapshot, error) {
	return s.apply(ctx, accountID, record, false)
}

// ApplyPayment settles a payment record, debiting the balance after
// re-checking sufficiency under the row lock.
func (s *PostgresStore) ApplyPayment(ctx context.Context, accountID string, record Transaction) (Snapshot, error) {
	return s.apply(ctx, accountID, record, true)
}

func (s *PostgresStore) apply(ctx context.Context, accountID string, record Transaction, debit bool) (Snapshot, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return Snapshot{}, ErrAccountNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Snapshot{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var balance, points int64
	err = tx.QueryRow(ctx, `SELECT balance, points FROM loyalty_accounts WHERE id = $1 FOR UPDATE`, id).
		Scan(&balance, &points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, ErrAccountNotFound
		}
		return Snapshot{}, err
	}

	if debit {
		if balance < record.Amount {
			return Snapshot{}, ErrInsufficientBalance
		}
		balance -= record.Amount
	} else {
		balance += record.Amount
	}
	points += record.Points

	if _, err := tx.Exec(ctx, `UPDATE loyalty_accounts SET balance = $1, points = $2 WHERE id = $3`,
		balance, points, id); err != nil {
		return Snapshot{}, err
	}

	if err := insertTransaction(ctx, tx, id, record, StatusCompleted); err != nil {
		return Snapshot{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Balance: balance, Points: points}, nil
}

// RecordFailed appends a FAILED record without touching balances.
func (s *PostgresStore) RecordFailed(ctx context.Context, accountID string, record Transaction) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return ErrAccountNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := insertTransaction(ctx, tx, id, record, StatusFailed); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// History returns the account's transactions newest first.
func (s *PostgresStore) History(ctx context.Context, accountID string) ([]Transaction, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	rows, err := s.db.Query(ctx, `SELECT id, type, status, amount, points, payment_method, description, created_at
        FROM loyalty_transactions WHERE account_id = $1 ORDER BY created_at DESC, id DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Transaction
	for rows.Next() {
		var (
			txID      uuid.UUID
			record    Transaction
			createdAt time.Time
		)
		if err := rows.Scan(&txID, &record.Type, &record.Status, &record.Amount,
			&record.Points, &record.PaymentMethod, &record.Description, &createdAt); err != nil {
			return nil, err
		}
		record.ID = txID.String()
		record.Date = createdAt.UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

func insertTransaction(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, record Transaction, status Status) error {
	txID, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO loyalty_transactions
        (id, account_id, type, status, amount, points, payment_method, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txID, accountID, record.Type, status, record.Amount, record.Points,
		record.PaymentMethod, record.Description, record.Date.UTC())
	return err
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		account   Account
		createdAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &account.CardNumber, &account.CardCVC,
		&account.ExpiryMonth, &account.ExpiryYear, &account.Balance, &account.Points, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	account.ID = id.String()
	account.OwnerID = ownerID.String()
	account.CreatedAt = createdAt.UTC()
	return account, nil
}
