package repository

import (
	"context"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	"gorm.io/gorm"
)

type transactionStore struct {
	db *gorm.DB
}

func (s *transactionStore) Insert(ctx context.Context, tx *account.Transaction) error {
	return WrapError(func() error {
		return s.db.WithContext(ctx).Create(&Transaction{
			TransID:         tx.ID,
			AccID:           tx.AccountID,
			Kind:            string(tx.Kind),
			TransMessage:    tx.Message,
			Amount:          tx.Amount,
			LastUpdatedDate: tx.Date(),
			CreatedAt:       tx.CreatedAt,
		}).Error
	})
}

// ListByAccount returns the newest limit rows for accountID. A limit of zero
// or less returns every row.
func (s *transactionStore) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*account.Transaction, error) {
	q := s.db.WithContext(ctx).
		Where("acc_id = ?", accountID).
		Order("created_at DESC").
		Order("trans_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Transaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]*account.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, account.NewTransactionFromData(
			row.TransID,
			row.AccID,
			account.Kind(row.Kind),
			row.TransMessage,
			row.Amount,
			row.CreatedAt,
		))
	}
	return txs, nil
}
