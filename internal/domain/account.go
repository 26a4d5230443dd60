package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vbanking/internal/errors"
)

// DefaultOpeningBalance is credited to every new account unless configured otherwise.
var DefaultOpeningBalance = decimal.New(100000, -2)

// balanceScale is the number of fractional digits a balance or amount may carry.
const balanceScale = 2

type Account struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Document  string          `json:"document"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	IsActive  bool            `json:"is_active"`
	// Version is bumped by every committed update and guards against lost updates.
	Version int64 `json:"-"`
}

// NewAccount builds an active account holding openingBalance.
func NewAccount(name, document string, openingBalance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.ErrNameRequired
	}
	if strings.TrimSpace(document) == "" {
		return nil, errors.ErrDocumentRequired
	}
	if openingBalance.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidArgument, "opening balance cannot be negative")
	}
	if err := checkScale(openingBalance); err != nil {
		return nil, err
	}

	return &Account{
		ID:        uuid.New(),
		Name:      name,
		Document:  document,
		Balance:   openingBalance,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
		Version:   1,
	}, nil
}

// Deactivate moves the account to its terminal inactive state.
func (a *Account) Deactivate() error {
	if !a.IsActive {
		return errors.ErrAlreadyInactive
	}
	a.IsActive = false
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if !a.IsActive {
		return errors.ErrAccountInactive.WithDetails("source account is inactive")
	}
	if a.Balance.LessThan(amount) {
		return errors.ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	if !a.IsActive {
		return errors.ErrAccountInactive.WithDetails("destination account is inactive")
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// ValidateAmount rejects non-positive amounts and amounts finer than a cent.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	return checkScale(amount)
}

func checkScale(v decimal.Decimal) error {
	if !v.Equal(v.Truncate(balanceScale)) {
		return errors.ErrAmountPrecision
	}
	return nil
}

type AccountRepository interface {
	// FindByDocument returns nil, nil when no account holds the document.
	FindByDocument(ctx context.Context, document string) (*Account, error)
	// FindByName returns accounts whose name contains name, case-sensitively.
	FindByName(ctx context.Context, name string) ([]*Account, error)
	Create(ctx context.Context, account *Account) error
	// Update persists the account if its stored version still equals
	// account.Version, then advances account.Version. The bump is not undone
	// when an enclosing transaction rolls back; re-read the account before
	// retrying.
	Update(ctx context.Context, account *Account) error
}
