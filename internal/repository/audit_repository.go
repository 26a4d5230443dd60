package repository

import (
	"context"
	"log/slog"

	"vbanking/internal/domain"
	"vbanking/internal/errors"
)

type deactivationLogRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewDeactivationLogRepository(db SQLExecutor, logger *slog.Logger) domain.AccountDeactivationLogRepository {
	return &deactivationLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *deactivationLogRepository) Append(ctx context.Context, log *domain.AccountDeactivationLog) error {
	query := `
		INSERT INTO account_deactivation_logs (id, document, deactivated_at, performed_by)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, log.ID, log.Document, log.DeactivatedAt, log.PerformedBy); err != nil {
		r.logger.Error("Failed to write deactivation log", "document", log.Document, "error", err)
		return errors.Internal("failed to write deactivation log", err)
	}

	r.logger.Info("Deactivation logged", "document", log.Document, "performed_by", log.PerformedBy)
	return nil
}

type transferAuditLogRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewTransferAuditLogRepository(db SQLExecutor, logger *slog.Logger) domain.TransferAuditLogRepository {
	return &transferAuditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transferAuditLogRepository) Append(ctx context.Context, log *domain.TransferAuditLog) error {
	query := `
		INSERT INTO transfer_audit_logs (id, from_document, to_document, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		log.ID,
		log.FromDocument,
		log.ToDocument,
		log.Amount.StringFixed(2),
		log.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to write transfer audit log",
			"from_document", log.FromDocument,
			"to_document", log.ToDocument,
			"amount", log.Amount,
			"error", err)
		return errors.Internal("failed to write transfer audit log", err)
	}

	r.logger.Info("Transfer audited", "audit_id", log.ID)
	return nil
}
