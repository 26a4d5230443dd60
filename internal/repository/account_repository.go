package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"vbanking/internal/domain"
	"vbanking/internal/errors"
)

const uniqueViolation = "23505"

const accountColumns = `id, name, document, balance, created_at, is_active, version`

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, document, balance, created_at, updated_at, is_active, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Name,
		account.Document,
		account.Balance.StringFixed(2),
		account.CreatedAt,
		account.CreatedAt,
		account.IsActive,
		account.Version,
	)

	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Warn("Duplicate account creation attempt", "document", account.Document)
			return errors.ErrDuplicateAccount
		}
		r.logger.Error("Failed to create account", "document", account.Document, "error", err)
		return errors.Internal("failed to create account", err)
	}

	r.logger.Info("Account created", "account_id", account.ID, "document", account.Document)
	return nil
}

func (r *accountRepository) FindByDocument(ctx context.Context, document string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE document = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, document))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get account", "document", document, "error", err)
		return nil, errors.Internal("failed to get account", err)
	}
	return account, nil
}

// FindByName matches name as a case-sensitive substring. strpos avoids
// treating % and _ in the input as LIKE wildcards.
func (r *accountRepository) FindByName(ctx context.Context, name string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE strpos(name, $1) > 0 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		r.logger.Error("Failed to search accounts", "name", name, "error", err)
		return nil, errors.Internal("failed to search accounts", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, errors.Internal("failed to read account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("failed to search accounts", err)
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, balance = $2, is_active = $3, version = version + 1, updated_at = $4
		WHERE id = $5 AND version = $6
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		account.Name,
		account.Balance.StringFixed(2),
		account.IsActive,
		time.Now().UTC(),
		account.ID,
		account.Version,
	)
	if err != nil {
		r.logger.Error("Failed to update account", "document", account.Document, "error", err)
		return errors.Internal("failed to update account", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Internal("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return r.missedUpdate(ctx, account)
	}

	account.Version++
	r.logger.Info("Account updated", "document", account.Document, "balance", account.Balance, "is_active", account.IsActive)
	return nil
}

// missedUpdate tells a vanished account apart from a stale version.
func (r *accountRepository) missedUpdate(ctx context.Context, account *domain.Account) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, account.ID).Scan(&exists)
	if err != nil {
		return errors.Internal("failed to update account", err)
	}
	if !exists {
		r.logger.Warn("No account found to update", "document", account.Document)
		return errors.ErrAccountNotFound
	}
	r.logger.Warn("Stale account version", "document", account.Document, "version", account.Version)
	return errors.ErrConcurrentUpdate
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Document,
		&balanceStr,
		&account.CreatedAt,
		&account.IsActive,
		&account.Version,
	)
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, err
	}

	account.Balance = balance
	account.CreatedAt = account.CreatedAt.UTC()
	return &account, nil
}
