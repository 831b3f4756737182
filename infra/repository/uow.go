package repository

import (
	"context"

	"github.com/amirasaad/finlabs/pkg/repository"
	"gorm.io/gorm"
)

// UoW hands out row stores bound to either the plain connection or, inside
// Do, the open transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction. Stores obtained from the UoW passed to fn
// share that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) AccountStore() repository.AccountStore {
	return &accountStore{db: u.session()}
}

func (u *UoW) TransactionStore() repository.TransactionStore {
	return &transactionStore{db: u.session()}
}
