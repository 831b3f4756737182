package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const EventTypeTransactionPosted = "account.transaction.posted"

// TransactionPosted is emitted after a ledger entry and its balance change
// have been committed together.
type TransactionPosted struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     int64           `json:"acc_id"`
	Kind          Kind            `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	PostedAt      time.Time       `json:"posted_at"`
}

func (e TransactionPosted) Type() string { return EventTypeTransactionPosted }
