package infra

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/finlabs/infra/repository"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBConnection_Unsupported(t *testing.T) {
	_, err := NewDBConnection(config.DB{Source: "oracle"}, "test")
	assert.Error(t, err)

	_, err = NewDBConnection(config.DB{Source: "postgres"}, "test")
	assert.EqualError(t, err, "DB_URL is not set")
}

func TestNewLendingConnection_RequiresDSN(t *testing.T) {
	_, err := NewLendingConnection("", "test")
	assert.Error(t, err)
}

func TestSQLiteLedger_EndToEnd(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := NewDBConnection(config.DB{Source: "sqlite", Url: dsn, MaxConns: 1}, "test")
	require.NoError(t, err)

	ledger := repository.NewLedger(repository.NewUoW(db))

	a, err := account.New().WithID(1).WithBalance(decimal.NewFromInt(100)).Build()
	require.NoError(t, err)
	require.NoError(t, ledger.Create(ctx, a))
	assert.ErrorIs(t, ledger.Create(ctx, a), account.ErrAccountExists)

	after, err := ledger.Post(ctx, account.NewTransaction(1, account.KindWithdrawal, decimal.NewFromInt(30)))
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(70)), after.Balance.String())

	_, err = ledger.Post(ctx, account.NewTransaction(1, account.KindWithdrawal, decimal.NewFromInt(71)))
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)

	_, err = ledger.Post(ctx, account.NewTransaction(2, account.KindDeposit, decimal.NewFromInt(1)))
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	lines, err := ledger.Statement(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Amount withdrawn", lines[0].Message)

	got, err := ledger.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(70)))
}

func TestSQLiteLedger_ConcurrentWithdrawals(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := NewDBConnection(config.DB{Source: "sqlite", Url: dsn, MaxConns: 1}, "test")
	require.NoError(t, err)
	ledger := repository.NewLedger(repository.NewUoW(db))

	a, err := account.New().WithID(1).WithBalance(decimal.NewFromInt(100)).Build()
	require.NoError(t, err)
	require.NoError(t, ledger.Create(ctx, a))

	var ok, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Post(ctx, account.NewTransaction(1, account.KindWithdrawal, decimal.NewFromInt(10)))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, account.ErrInsufficientFunds):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, ok.Load())
	assert.EqualValues(t, 30, rejected.Load())

	got, err := ledger.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero(), got.Balance.String())

	lines, err := ledger.Statement(ctx, 1, 100)
	require.NoError(t, err)
	assert.Len(t, lines, 10)
}

func TestSQLiteLedger_TransferReturnsBalances(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := NewDBConnection(config.DB{Source: "sqlite", Url: dsn, MaxConns: 1}, "test")
	require.NoError(t, err)
	ledger := repository.NewLedger(repository.NewUoW(db))

	for id, balance := range map[int64]int64{1: 100, 2: 5} {
		a, err := account.New().WithID(id).WithBalance(decimal.NewFromInt(balance)).Build()
		require.NoError(t, err)
		require.NoError(t, ledger.Create(ctx, a))
	}

	amount := decimal.NewFromInt(40)
	from, to, err := ledger.Transfer(ctx,
		account.NewTransaction(1, account.KindTransferOut, amount),
		account.NewTransaction(2, account.KindTransferIn, amount))
	require.NoError(t, err)
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(60)), from.Balance.String())
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(45)), to.Balance.String())

	_, _, err = ledger.Transfer(ctx,
		account.NewTransaction(2, account.KindTransferOut, decimal.NewFromInt(46)),
		account.NewTransaction(1, account.KindTransferIn, decimal.NewFromInt(46)))
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)

	unchanged, err := ledger.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, unchanged.Balance.Equal(decimal.NewFromInt(45)))
}
