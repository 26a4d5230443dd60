package domain

import "context"

// Store groups the repositories a workflow needs and lets it run several
// writes as one atomic unit.
type Store interface {
	Accounts() AccountRepository
	DeactivationLogs() AccountDeactivationLogRepository
	TransferAuditLogs() TransferAuditLogRepository
	// WithTransaction runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}
