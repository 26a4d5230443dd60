package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"vbanking/internal/domain"
	"vbanking/internal/errors"
)

type TransferService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewTransferService(store domain.Store, logger *slog.Logger) *TransferService {
	return &TransferService{
		store:  store,
		logger: logger,
	}
}

type TransferRequest struct {
	FromDocument string
	ToDocument   string
	Amount       decimal.Decimal
}

// Transfer moves Amount between the two accounts. Both balance updates and
// the audit record commit together or not at all.
func (s *TransferService) Transfer(ctx context.Context, req *TransferRequest) (*domain.TransferAuditLog, error) {
	s.logger.Info("Processing transfer",
		"from_document", req.FromDocument,
		"to_document", req.ToDocument,
		"amount", req.Amount)

	if req.FromDocument == req.ToDocument {
		return nil, errors.ErrSameAccount
	}

	var audit *domain.TransferAuditLog
	err := s.store.WithTransaction(ctx, func(tx domain.Store) error {
		from, err := tx.Accounts().FindByDocument(ctx, req.FromDocument)
		if err != nil {
			return err
		}
		to, err := tx.Accounts().FindByDocument(ctx, req.ToDocument)
		if err != nil {
			return err
		}
		if from == nil || to == nil {
			return errors.ErrAccountNotFound.WithDetails("one or both accounts were not found")
		}

		if !from.IsActive || !to.IsActive {
			return errors.ErrBothMustBeActive
		}
		if from.Balance.LessThan(req.Amount) {
			return errors.ErrInsufficientFunds.WithDetails("insufficient funds in source account")
		}

		if err := from.Withdraw(req.Amount); err != nil {
			return err
		}
		if err := to.Deposit(req.Amount); err != nil {
			return err
		}

		if err := tx.Accounts().Update(ctx, from); err != nil {
			return err
		}
		if err := tx.Accounts().Update(ctx, to); err != nil {
			return err
		}

		audit = domain.NewTransferAuditLog(req.FromDocument, req.ToDocument, req.Amount)
		return tx.TransferAuditLogs().Append(ctx, audit)
	})
	if err != nil {
		s.logger.Error("Transfer failed", "from_document", req.FromDocument, "to_document", req.ToDocument, "error", err)
		return nil, err
	}

	s.logger.Info("Transfer completed successfully", "audit_id", audit.ID)
	return audit, nil
}
