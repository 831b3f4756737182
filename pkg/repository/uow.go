package repository

import (
	"context"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// UnitOfWork scopes the SQL row stores to one database transaction.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error,
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountStore() AccountStore
	TransactionStore() TransactionStore
}

// AccountStore is row-level access to the accounts table.
type AccountStore interface {
	Find(ctx context.Context, id int64) (*account.Account, error)
	FindAll(ctx context.Context) ([]*account.Account, error)
	Insert(ctx context.Context, a *account.Account) error
	// Adjust adds delta to the balance unless the result would be negative.
	// It reports the number of rows changed.
	Adjust(ctx context.Context, id int64, delta decimal.Decimal) (int64, error)
}

// TransactionStore is row-level access to the statement table.
type TransactionStore interface {
	Insert(ctx context.Context, tx *account.Transaction) error
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]*account.Transaction, error)
}
