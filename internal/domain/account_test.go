package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vbanking/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestAccount(t *testing.T, name, document string) *Account {
	t.Helper()
	account, err := NewAccount(name, document, DefaultOpeningBalance)
	require.NoError(t, err)
	return account
}

func TestNewAccount(t *testing.T) {
	account := newTestAccount(t, "Gabriel", "12345678900")

	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "Gabriel", account.Name)
	assert.Equal(t, "12345678900", account.Document)
	assert.True(t, account.Balance.Equal(dec("1000.00")), "balance = %s", account.Balance)
	assert.True(t, account.IsActive)
	assert.Equal(t, int64(1), account.Version)
	assert.WithinDuration(t, time.Now().UTC(), account.CreatedAt, time.Second)
	assert.Equal(t, time.UTC, account.CreatedAt.Location())
}

func TestNewAccountUsesOpeningBalance(t *testing.T) {
	account, err := NewAccount("Fulano", "55566677788", dec("250.50"))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("250.50")))
}

func TestNewAccountValidation(t *testing.T) {
	tests := []struct {
		name     string
		accName  string
		document string
		opening  decimal.Decimal
	}{
		{"empty name", "", "12345678900", DefaultOpeningBalance},
		{"whitespace name", "   ", "12345678900", DefaultOpeningBalance},
		{"empty document", "Fulano", "", DefaultOpeningBalance},
		{"whitespace document", "Fulano", "\t ", DefaultOpeningBalance},
		{"negative opening balance", "Fulano", "12345678900", dec("-1")},
		{"sub-cent opening balance", "Fulano", "12345678900", dec("10.001")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := NewAccount(tt.accName, tt.document, tt.opening)
			assert.Nil(t, account)
			assert.Equal(t, errors.InvalidArgument, errors.CodeOf(err))
		})
	}
}

func TestDeactivate(t *testing.T) {
	account := newTestAccount(t, "Ciclano", "65432198700")

	require.NoError(t, account.Deactivate())
	assert.False(t, account.IsActive)
	assert.True(t, account.Balance.Equal(dec("1000.00")), "deactivation must not touch the balance")
	assert.Equal(t, "65432198700", account.Document)

	err := account.Deactivate()
	assert.ErrorIs(t, err, errors.ErrAlreadyInactive)
	assert.Equal(t, errors.InvalidState, errors.CodeOf(err))
}

func TestWithdraw(t *testing.T) {
	t.Run("reduces balance by exact amount", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		require.NoError(t, account.Withdraw(dec("0.10")))
		require.NoError(t, account.Withdraw(dec("0.20")))
		assert.True(t, account.Balance.Equal(dec("999.70")), "balance = %s", account.Balance)
	})

	t.Run("exact balance leaves zero", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		require.NoError(t, account.Withdraw(dec("1000")))
		assert.True(t, account.Balance.IsZero())
	})

	t.Run("insufficient funds", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		err := account.Withdraw(dec("2000"))
		assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
		assert.True(t, account.Balance.Equal(dec("1000")))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		for _, amount := range []string{"0", "-500", "-0.01"} {
			err := account.Withdraw(dec(amount))
			assert.Equal(t, errors.InvalidArgument, errors.CodeOf(err), amount)
		}
		assert.True(t, account.Balance.Equal(dec("1000")))
	})

	t.Run("amount validated before activation state", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		require.NoError(t, account.Deactivate())
		assert.Equal(t, errors.InvalidArgument, errors.CodeOf(account.Withdraw(dec("-1"))))
	})

	t.Run("inactive account", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		require.NoError(t, account.Deactivate())
		err := account.Withdraw(dec("200"))
		assert.Equal(t, errors.InvalidState, errors.CodeOf(err))
		assert.True(t, account.Balance.Equal(dec("1000")))
	})

	t.Run("sub-cent amount", func(t *testing.T) {
		account := newTestAccount(t, "Gabriel", "11122233344")
		assert.ErrorIs(t, account.Withdraw(dec("0.005")), errors.ErrAmountPrecision)
	})
}

func TestDeposit(t *testing.T) {
	t.Run("increases balance", func(t *testing.T) {
		account := newTestAccount(t, "Fulano", "55566677788")
		require.NoError(t, account.Deposit(dec("200")))
		assert.True(t, account.Balance.Equal(dec("1200")))
	})

	t.Run("inactive account checked first", func(t *testing.T) {
		account := newTestAccount(t, "Fulano", "55566677788")
		require.NoError(t, account.Deactivate())
		assert.Equal(t, errors.InvalidState, errors.CodeOf(account.Deposit(dec("-1"))))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		account := newTestAccount(t, "Fulano", "55566677788")
		assert.ErrorIs(t, account.Deposit(dec("0")), errors.ErrInvalidAmount)
		assert.True(t, account.Balance.Equal(dec("1000")))
	})
}

func TestWithdrawDepositConservesTotal(t *testing.T) {
	from := newTestAccount(t, "Gabriel", "11122233344")
	to := newTestAccount(t, "Fulano", "55566677788")
	third := newTestAccount(t, "Ciclano", "99988877766")
	before := from.Balance.Add(to.Balance)

	amount := dec("333.33")
	require.NoError(t, from.Withdraw(amount))
	require.NoError(t, to.Deposit(amount))

	assert.True(t, before.Equal(from.Balance.Add(to.Balance)))
	assert.True(t, from.Balance.Equal(dec("666.67")))
	assert.True(t, to.Balance.Equal(dec("1333.33")))
	assert.True(t, third.Balance.Equal(dec("1000")))
}

func TestAuditLogConstructors(t *testing.T) {
	deactivation := NewAccountDeactivationLog("12345678900", "Admin")
	assert.Equal(t, "12345678900", deactivation.Document)
	assert.Equal(t, "Admin", deactivation.PerformedBy)
	assert.WithinDuration(t, time.Now().UTC(), deactivation.DeactivatedAt, time.Second)

	transfer := NewTransferAuditLog("11122233344", "55566677788", dec("200.00"))
	assert.Equal(t, "11122233344", transfer.FromDocument)
	assert.Equal(t, "55566677788", transfer.ToDocument)
	assert.True(t, transfer.Amount.Equal(dec("200")))
	assert.NotEqual(t, deactivation.ID, transfer.ID)
}
