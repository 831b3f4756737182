package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockLedger(t *testing.T) (*Ledger, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewLedger(NewUoW(db)), mock
}

var (
	selectAccount = regexp.QuoteMeta(`SELECT * FROM "accounts" WHERE acc_id = $1`)
	updateBalance = regexp.QuoteMeta(`UPDATE "accounts" SET "balance"=balance + $1,"updated_at"=$2 WHERE acc_id = $3 AND balance + $4 >= 0`)
	insertTx      = `INSERT INTO "deposits_transactions" (.+) VALUES (.+)`
)

func accountRows(id int64, balance string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"acc_id", "balance", "updated_at"}).
		AddRow(id, balance, time.Now())
}

func TestLedger_Get(t *testing.T) {
	l, mock := newMockLedger(t)
	mock.ExpectQuery(selectAccount).WillReturnRows(accountRows(3, "250.00"))

	a, err := l.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(250)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Get_NotFound(t *testing.T) {
	l, mock := newMockLedger(t)
	mock.ExpectQuery(selectAccount).WillReturnRows(sqlmock.NewRows([]string{"acc_id", "balance", "updated_at"}))

	_, err := l.Get(context.Background(), 3)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestLedger_Create(t *testing.T) {
	l, mock := newMockLedger(t)
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a, err := account.New().WithID(9).WithBalance(decimal.NewFromInt(10)).Build()
	require.NoError(t, err)
	assert.NoError(t, l.Create(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Post_Deposit(t *testing.T) {
	l, mock := newMockLedger(t)
	tx := account.NewTransaction(3, account.KindDeposit, decimal.NewFromInt(50))

	mock.ExpectBegin()
	mock.ExpectExec(updateBalance).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertTx).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectAccount).WillReturnRows(accountRows(3, "150"))
	mock.ExpectCommit()

	a, err := l.Post(context.Background(), tx)
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(150)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Post_InsufficientFunds(t *testing.T) {
	l, mock := newMockLedger(t)
	tx := account.NewTransaction(3, account.KindWithdrawal, decimal.NewFromInt(500))

	mock.ExpectBegin()
	mock.ExpectExec(updateBalance).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectAccount).WillReturnRows(accountRows(3, "100"))
	mock.ExpectRollback()

	_, err := l.Post(context.Background(), tx)
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Post_AccountMissing(t *testing.T) {
	l, mock := newMockLedger(t)
	tx := account.NewTransaction(77, account.KindDeposit, decimal.NewFromInt(5))

	mock.ExpectBegin()
	mock.ExpectExec(updateBalance).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectAccount).WillReturnRows(sqlmock.NewRows([]string{"acc_id", "balance", "updated_at"}))
	mock.ExpectRollback()

	_, err := l.Post(context.Background(), tx)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Transfer_RollsBackWhenCreditFails(t *testing.T) {
	l, mock := newMockLedger(t)
	amount := decimal.NewFromInt(25)
	out := account.NewTransaction(1, account.KindTransferOut, amount)
	in := account.NewTransaction(2, account.KindTransferIn, amount)

	mock.ExpectBegin()
	mock.ExpectExec(updateBalance).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertTx).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateBalance).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectAccount).WillReturnRows(sqlmock.NewRows([]string{"acc_id", "balance", "updated_at"}))
	mock.ExpectRollback()

	_, _, err := l.Transfer(context.Background(), out, in)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Statement(t *testing.T) {
	l, mock := newMockLedger(t)
	tx := account.NewTransaction(3, account.KindWithdrawal, decimal.NewFromInt(5))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "deposits_transactions" WHERE acc_id = $1 ORDER BY created_at DESC,trans_id DESC LIMIT $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"trans_id", "acc_id", "kind", "trans_message", "amount", "last_updated_date", "created_at"}).
			AddRow(tx.ID.String(), 3, "withdrawal", "Amount withdrawn", "5", tx.Date(), tx.CreatedAt))

	txs, err := l.Statement(context.Background(), 3, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)
	assert.Equal(t, account.KindWithdrawal, txs[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
