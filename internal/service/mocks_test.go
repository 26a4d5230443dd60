package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vbanking/internal/domain"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByDocument(ctx context.Context, document string) (*domain.Account, error) {
	args := m.Called(ctx, document)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *mockAccountRepository) FindByName(ctx context.Context, name string) ([]*domain.Account, error) {
	args := m.Called(ctx, name)
	accounts, _ := args.Get(0).([]*domain.Account)
	return accounts, args.Error(1)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *mockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

type mockDeactivationLogRepository struct {
	mock.Mock
}

func (m *mockDeactivationLogRepository) Append(ctx context.Context, log *domain.AccountDeactivationLog) error {
	return m.Called(ctx, log).Error(0)
}

type mockTransferAuditLogRepository struct {
	mock.Mock
}

func (m *mockTransferAuditLogRepository) Append(ctx context.Context, log *domain.TransferAuditLog) error {
	return m.Called(ctx, log).Error(0)
}

// mockStore hands out the mocked repositories and runs transactions inline.
type mockStore struct {
	accounts         *mockAccountRepository
	deactivationLogs *mockDeactivationLogRepository
	transferLogs     *mockTransferAuditLogRepository
	transactions     int
}

func newMockStore() *mockStore {
	return &mockStore{
		accounts:         &mockAccountRepository{},
		deactivationLogs: &mockDeactivationLogRepository{},
		transferLogs:     &mockTransferAuditLogRepository{},
	}
}

func (s *mockStore) Accounts() domain.AccountRepository { return s.accounts }

func (s *mockStore) DeactivationLogs() domain.AccountDeactivationLogRepository {
	return s.deactivationLogs
}

func (s *mockStore) TransferAuditLogs() domain.TransferAuditLogRepository { return s.transferLogs }

func (s *mockStore) WithTransaction(ctx context.Context, fn func(domain.Store) error) error {
	s.transactions++
	return fn(s)
}

func (s *mockStore) Ping(ctx context.Context) error { return nil }
