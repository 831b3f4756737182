package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/finlabs/pkg/domain"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type accountStore struct {
	db *gorm.DB
}

func (s *accountStore) Find(ctx context.Context, id int64) (*account.Account, error) {
	var row Account
	err := WrapError(func() error {
		return s.db.WithContext(ctx).First(&row, "acc_id = ?", id).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainAccount(row)
}

func (s *accountStore) FindAll(ctx context.Context) ([]*account.Account, error) {
	var rows []Account
	if err := s.db.WithContext(ctx).Order("acc_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]*account.Account, 0, len(rows))
	for _, row := range rows {
		a, err := toDomainAccount(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *accountStore) Insert(ctx context.Context, a *account.Account) error {
	err := WrapError(func() error {
		return s.db.WithContext(ctx).Create(&Account{
			AccID:     a.ID,
			Balance:   a.Balance,
			UpdatedAt: a.UpdatedAt,
		}).Error
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return account.ErrAccountExists
	}
	return err
}

// Adjust applies delta in a single UPDATE whose WHERE clause refuses any
// result below zero.
func (s *accountStore) Adjust(ctx context.Context, id int64, delta decimal.Decimal) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&Account{}).
		Where("acc_id = ? AND balance + ? >= 0", id, delta).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func toDomainAccount(row Account) (*account.Account, error) {
	return account.New().
		WithID(row.AccID).
		WithBalance(row.Balance).
		WithUpdatedAt(row.UpdatedAt).
		Build()
}
