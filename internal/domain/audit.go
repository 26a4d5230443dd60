package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDeactivationLog records who deactivated which account and when.
type AccountDeactivationLog struct {
	ID            uuid.UUID `json:"id"`
	Document      string    `json:"document"`
	DeactivatedAt time.Time `json:"deactivated_at"`
	PerformedBy   string    `json:"performed_by"`
}

func NewAccountDeactivationLog(document, performedBy string) *AccountDeactivationLog {
	return &AccountDeactivationLog{
		ID:            uuid.New(),
		Document:      document,
		DeactivatedAt: time.Now().UTC(),
		PerformedBy:   performedBy,
	}
}

// TransferAuditLog records a committed transfer between two accounts.
type TransferAuditLog struct {
	ID           uuid.UUID       `json:"id"`
	FromDocument string          `json:"from_document"`
	ToDocument   string          `json:"to_document"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
}

func NewTransferAuditLog(fromDocument, toDocument string, amount decimal.Decimal) *TransferAuditLog {
	return &TransferAuditLog{
		ID:           uuid.New(),
		FromDocument: fromDocument,
		ToDocument:   toDocument,
		Amount:       amount,
		Timestamp:    time.Now().UTC(),
	}
}

// Audit logs are append-only.
type AccountDeactivationLogRepository interface {
	Append(ctx context.Context, log *AccountDeactivationLog) error
}

type TransferAuditLogRepository interface {
	Append(ctx context.Context, log *TransferAuditLog) error
}
