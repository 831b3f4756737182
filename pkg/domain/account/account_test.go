package account_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	domainaccount "github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestBuild(t *testing.T) {
	t.Parallel()

	acc, err := domainaccount.New().WithID(42).WithBalance(decimal.NewFromInt(100)).Build()
	require.NoError(t, err)
	assert.Equal(t, int64(42), acc.ID)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))

	_, err = domainaccount.New().WithBalance(decimal.NewFromInt(1)).Build()
	assert.ErrorIs(t, err, domainaccount.ErrInvalidAccountID)

	_, err = domainaccount.New().WithID(1).WithBalance(decimal.NewFromInt(-1)).Build()
	assert.ErrorIs(t, err, domainaccount.ErrNegativeBalance)
}

func TestValidateWithdraw(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithID(1).WithBalance(decimal.NewFromInt(100)).Build()
	require.NoError(t, err)

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   error
	}{
		{"partial", decimal.NewFromInt(50), nil},
		{"whole balance", decimal.NewFromInt(100), nil},
		{"overdraw", decimal.NewFromInt(101), domainaccount.ErrInsufficientFunds},
		{"zero", decimal.Zero, domainaccount.ErrAmountMustBePositive},
		{"negative", decimal.NewFromInt(-5), domainaccount.ErrAmountMustBePositive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := acc.ValidateWithdraw(tc.amount)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidatePay(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithID(7).WithBalance(decimal.NewFromInt(250)).Build()
	require.NoError(t, err)

	assert.NoError(t, acc.ValidatePay(decimal.NewFromInt(250)))
	assert.ErrorIs(t, acc.ValidatePay(decimal.NewFromInt(251)), domainaccount.ErrPaymentExceedsBalance)
	assert.ErrorIs(t, acc.ValidatePay(decimal.Zero), domainaccount.ErrAmountMustBePositive)
}

func TestValidateTransfer(t *testing.T) {
	t.Parallel()
	src, _ := domainaccount.New().WithID(1).WithBalance(decimal.NewFromInt(10)).Build()
	dst, _ := domainaccount.New().WithID(2).Build()

	assert.NoError(t, src.ValidateTransfer(dst, decimal.NewFromInt(10)))
	assert.ErrorIs(t, src.ValidateTransfer(src, decimal.NewFromInt(1)), domainaccount.ErrCannotTransferToSameAccount)
	assert.ErrorIs(t, src.ValidateTransfer(dst, decimal.NewFromInt(11)), domainaccount.ErrInsufficientFunds)
}

func TestTransaction(t *testing.T) {
	t.Parallel()

	dep := domainaccount.NewTransaction(1, domainaccount.KindDeposit, decimal.NewFromInt(30))
	assert.Equal(t, "Amount Deposited", dep.Message)
	assert.True(t, dep.Delta().Equal(decimal.NewFromInt(30)))
	assert.Equal(t, uuid.Version(7), dep.ID.Version())

	wd := domainaccount.NewTransaction(1, domainaccount.KindWithdrawal, decimal.NewFromInt(30))
	assert.Equal(t, "Amount withdrawn", wd.Message)
	assert.True(t, wd.Delta().Equal(decimal.NewFromInt(-30)))

	pay := domainaccount.NewTransaction(1, domainaccount.KindPayment, decimal.NewFromInt(5))
	assert.Equal(t, "Amount paid", pay.Message)
	assert.True(t, pay.Delta().IsNegative())

	assert.Less(t, dep.ID.String(), pay.ID.String())
	assert.Len(t, dep.Date(), len("2006-01-02"))
}
