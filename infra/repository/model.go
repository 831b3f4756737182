package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccID     int64           `gorm:"column:acc_id;primaryKey;autoIncrement:false"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	UpdatedAt time.Time
}

func (Account) TableName() string {
	return "accounts"
}

// Transaction is a row of the deposits_transactions table.
type Transaction struct {
	TransID         uuid.UUID       `gorm:"column:trans_id;type:uuid;primaryKey"`
	AccID           int64           `gorm:"column:acc_id;index:idx_tx_account,priority:1;not null"`
	Kind            string          `gorm:"type:varchar(16);not null"`
	TransMessage    string          `gorm:"column:trans_message;type:varchar(64)"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	LastUpdatedDate string          `gorm:"column:last_updated_date;type:varchar(10)"`
	CreatedAt       time.Time       `gorm:"index:idx_tx_account,priority:2"`
}

func (Transaction) TableName() string {
	return "deposits_transactions"
}
