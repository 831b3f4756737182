package repository

import (
	"context"
	"time"

	"github.com/amirasaad/finlabs/pkg/domain/account"
)

// AccountRepository is the ledger used by the banking apps. Post and
// Transfer change balances and append statement lines atomically, and
// reject any change that would leave a balance below zero.
type AccountRepository interface {
	Get(ctx context.Context, id int64) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error

	// Post applies tx.Delta() to the account and records tx. It returns the
	// account as it is after the change.
	Post(ctx context.Context, tx *account.Transaction) (*account.Account, error)

	// Transfer posts both legs or neither. It returns the source and
	// destination accounts as they are after the change.
	Transfer(ctx context.Context, out, in *account.Transaction) (from, to *account.Account, err error)

	// Statement returns up to limit transactions, newest first.
	Statement(ctx context.Context, accountID int64, limit int) ([]*account.Transaction, error)
}

// Guard remembers keys for a while so that redelivered stream records are
// processed once.
type Guard interface {
	// Seen marks key and reports whether it had already been marked.
	Seen(ctx context.Context, key string) (bool, error)
	// Forget removes key so a failed record can be retried.
	Forget(ctx context.Context, key string) error
}

// GuardTTL is the default retention for Guard keys.
const GuardTTL = 24 * time.Hour
