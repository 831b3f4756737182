package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/amirasaad/finlabs/pkg/repository"
)

// Ledger is the SQL rendition of repository.AccountRepository. Every
// balance change and its statement line share one database transaction.
type Ledger struct {
	uow repository.UnitOfWork
}

var _ repository.AccountRepository = (*Ledger)(nil)

func NewLedger(uow repository.UnitOfWork) *Ledger {
	return &Ledger{uow: uow}
}

func (l *Ledger) Get(ctx context.Context, id int64) (*account.Account, error) {
	return l.uow.AccountStore().Find(ctx, id)
}

func (l *Ledger) List(ctx context.Context) ([]*account.Account, error) {
	return l.uow.AccountStore().FindAll(ctx)
}

func (l *Ledger) Create(ctx context.Context, a *account.Account) error {
	return l.uow.AccountStore().Insert(ctx, a)
}

func (l *Ledger) Post(ctx context.Context, tx *account.Transaction) (*account.Account, error) {
	var after *account.Account
	err := l.uow.Do(ctx, func(u repository.UnitOfWork) error {
		if err := apply(ctx, u, tx); err != nil {
			return err
		}
		var err error
		after, err = u.AccountStore().Find(ctx, tx.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return after, nil
}

func (l *Ledger) Transfer(ctx context.Context, out, in *account.Transaction) (*account.Account, *account.Account, error) {
	var from, to *account.Account
	err := l.uow.Do(ctx, func(u repository.UnitOfWork) error {
		if err := apply(ctx, u, out); err != nil {
			return err
		}
		if err := apply(ctx, u, in); err != nil {
			return err
		}
		var err error
		if from, err = u.AccountStore().Find(ctx, out.AccountID); err != nil {
			return err
		}
		to, err = u.AccountStore().Find(ctx, in.AccountID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (l *Ledger) Statement(ctx context.Context, accountID int64, limit int) ([]*account.Transaction, error) {
	return l.uow.TransactionStore().ListByAccount(ctx, accountID, limit)
}

// apply adjusts the balance and appends the statement line. When the guarded
// update touches no row, a lookup tells a missing account from an overdraft.
func apply(ctx context.Context, u repository.UnitOfWork, tx *account.Transaction) error {
	n, err := u.AccountStore().Adjust(ctx, tx.AccountID, tx.Delta())
	if err != nil {
		return fmt.Errorf("adjust balance %d: %w", tx.AccountID, err)
	}
	if n == 0 {
		if _, err := u.AccountStore().Find(ctx, tx.AccountID); err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return fmt.Errorf("account %d: %w", tx.AccountID, err)
			}
			return err
		}
		return account.ErrInsufficientFunds
	}
	if err := u.TransactionStore().Insert(ctx, tx); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
