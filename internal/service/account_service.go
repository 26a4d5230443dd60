package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vbanking/internal/domain"
	"vbanking/internal/errors"
)

// AccountPolicy carries the configurable values applied by account workflows.
type AccountPolicy struct {
	OpeningBalance    decimal.Decimal
	DeactivationActor string
}

// DefaultAccountPolicy credits 1000.00 on creation and attributes deactivations to "Admin".
func DefaultAccountPolicy() AccountPolicy {
	return AccountPolicy{
		OpeningBalance:    domain.DefaultOpeningBalance,
		DeactivationActor: "Admin",
	}
}

type AccountService struct {
	store  domain.Store
	policy AccountPolicy
	logger *slog.Logger
}

func NewAccountService(store domain.Store, policy AccountPolicy, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// CreateAccount opens an account for document and returns its identifier.
// The lookup is only a fast path: a unique violation raised by storage
// surfaces as the same conflict.
func (s *AccountService) CreateAccount(ctx context.Context, name, document string) (uuid.UUID, error) {
	s.logger.Info("Creating account", "document", document)

	existing, err := s.store.Accounts().FindByDocument(ctx, document)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		s.logger.Warn("Account already exists", "document", document)
		return uuid.Nil, errors.ErrDuplicateAccount
	}

	account, err := domain.NewAccount(name, document, s.policy.OpeningBalance)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.Accounts().Create(ctx, account); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("Account created successfully", "account_id", account.ID, "document", document)
	return account.ID, nil
}

func (s *AccountService) GetAccount(ctx context.Context, document string) (*domain.Account, error) {
	account, err := s.store.Accounts().FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

func (s *AccountService) SearchAccounts(ctx context.Context, name string) ([]*domain.Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.ErrNameRequired
	}
	return s.store.Accounts().FindByName(ctx, name)
}

// Deactivate closes the account for document and records who did it. A
// missing account and an already inactive one both report NotFound.
func (s *AccountService) Deactivate(ctx context.Context, document string) error {
	s.logger.Info("Deactivating account", "document", document)

	err := s.store.WithTransaction(ctx, func(tx domain.Store) error {
		account, err := tx.Accounts().FindByDocument(ctx, document)
		if err != nil {
			return err
		}
		if account == nil || !account.IsActive {
			return errors.ErrNotFoundOrInactive
		}

		if err := account.Deactivate(); err != nil {
			return err
		}
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		return tx.DeactivationLogs().Append(ctx, domain.NewAccountDeactivationLog(document, s.policy.DeactivationActor))
	})
	if err != nil {
		s.logger.Error("Deactivation failed", "document", document, "error", err)
		return err
	}

	s.logger.Info("Account deactivated", "document", document, "performed_by", s.policy.DeactivationActor)
	return nil
}
