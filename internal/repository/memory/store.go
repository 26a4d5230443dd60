// Package memory keeps accounts and audit logs in process memory. It backs
// the "memory" storage driver and HTTP-level tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vbanking/internal/domain"
	"vbanking/internal/errors"
)

type state struct {
	accounts         map[uuid.UUID]domain.Account
	byDocument       map[string]uuid.UUID
	deactivationLogs []domain.AccountDeactivationLog
	transferLogs     []domain.TransferAuditLog
}

func (st *state) clone() *state {
	cp := &state{
		accounts:         make(map[uuid.UUID]domain.Account, len(st.accounts)),
		byDocument:       make(map[string]uuid.UUID, len(st.byDocument)),
		deactivationLogs: append([]domain.AccountDeactivationLog(nil), st.deactivationLogs...),
		transferLogs:     append([]domain.TransferAuditLog(nil), st.transferLogs...),
	}
	for id, a := range st.accounts {
		cp.accounts[id] = a
	}
	for doc, id := range st.byDocument {
		cp.byDocument[doc] = id
	}
	return cp
}

// Store is a domain.Store held entirely in memory. Transactions take the
// store lock for their whole duration and work on a copy that replaces the
// live state only on commit.
type Store struct {
	mu      *sync.Mutex
	root    **state
	inTx    bool
	working *state
}

var _ domain.Store = (*Store)(nil)

func NewStore() *Store {
	st := &state{
		accounts:   make(map[uuid.UUID]domain.Account),
		byDocument: make(map[string]uuid.UUID),
	}
	return &Store{mu: &sync.Mutex{}, root: &st}
}

// with runs fn against the state visible to this store.
func (s *Store) with(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Internal("storage call canceled", err)
	}
	if s.inTx {
		return fn(s.working)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(*s.root)
}

func (s *Store) Accounts() domain.AccountRepository {
	return &accountRepository{store: s}
}

func (s *Store) DeactivationLogs() domain.AccountDeactivationLogRepository {
	return &deactivationLogRepository{store: s}
}

func (s *Store) TransferAuditLogs() domain.TransferAuditLogRepository {
	return &transferAuditLogRepository{store: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) WithTransaction(ctx context.Context, fn func(domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := (*s.root).clone()
	txStore := &Store{mu: s.mu, root: s.root, inTx: true, working: working}
	if err := fn(txStore); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Internal("transaction canceled", err)
	}
	*s.root = working
	return nil
}

// DeactivationLogEntries returns a copy of every deactivation log written so far.
func (s *Store) DeactivationLogEntries() []domain.AccountDeactivationLog {
	var out []domain.AccountDeactivationLog
	_ = s.with(context.Background(), func(st *state) error {
		out = append(out, st.deactivationLogs...)
		return nil
	})
	return out
}

// TransferLogEntries returns a copy of every transfer audit log written so far.
func (s *Store) TransferLogEntries() []domain.TransferAuditLog {
	var out []domain.TransferAuditLog
	_ = s.with(context.Background(), func(st *state) error {
		out = append(out, st.transferLogs...)
		return nil
	})
	return out
}

type accountRepository struct {
	store *Store
}

func (r *accountRepository) FindByDocument(ctx context.Context, document string) (*domain.Account, error) {
	var found *domain.Account
	err := r.store.with(ctx, func(st *state) error {
		if id, ok := st.byDocument[document]; ok {
			a := st.accounts[id]
			found = &a
		}
		return nil
	})
	return found, err
}

func (r *accountRepository) FindByName(ctx context.Context, name string) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)
	err := r.store.with(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if strings.Contains(a.Name, name) {
				cp := a
				accounts = append(accounts, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortAccounts(accounts)
	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.store.with(ctx, func(st *state) error {
		if _, exists := st.byDocument[account.Document]; exists {
			return errors.ErrDuplicateAccount
		}
		st.accounts[account.ID] = *account
		st.byDocument[account.Document] = account.ID
		return nil
	})
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	return r.store.with(ctx, func(st *state) error {
		current, ok := st.accounts[account.ID]
		if !ok {
			return errors.ErrAccountNotFound
		}
		if current.Version != account.Version {
			return errors.ErrConcurrentUpdate
		}
		account.Version++
		st.accounts[account.ID] = *account
		return nil
	})
}

type deactivationLogRepository struct {
	store *Store
}

func (r *deactivationLogRepository) Append(ctx context.Context, log *domain.AccountDeactivationLog) error {
	return r.store.with(ctx, func(st *state) error {
		st.deactivationLogs = append(st.deactivationLogs, *log)
		return nil
	})
}

type transferAuditLogRepository struct {
	store *Store
}

func (r *transferAuditLogRepository) Append(ctx context.Context, log *domain.TransferAuditLog) error {
	return r.store.with(ctx, func(st *state) error {
		st.transferLogs = append(st.transferLogs, *log)
		return nil
	})
}

func sortAccounts(accounts []*domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].Document < accounts[j].Document
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
}
