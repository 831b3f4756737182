package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a ledger entry.
type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindWithdrawal  Kind = "withdrawal"
	KindPayment     Kind = "payment"
	KindTransferOut Kind = "transfer_out"
	KindTransferIn  Kind = "transfer_in"
)

var kindMessages = map[Kind]string{
	KindDeposit:     "Amount Deposited",
	KindWithdrawal:  "Amount withdrawn",
	KindPayment:     "Amount paid",
	KindTransferOut: "Amount transferred",
	KindTransferIn:  "Amount transferred",
}

// Message is the statement text shown for the kind.
func (k Kind) Message() string {
	return kindMessages[k]
}

// Debit reports whether the kind lowers the balance.
func (k Kind) Debit() bool {
	return k == KindWithdrawal || k == KindPayment || k == KindTransferOut
}

// Transaction is an append-only statement line. IDs are UUIDv7 so that
// sorting by ID sorts by creation time.
type Transaction struct {
	ID        uuid.UUID
	AccountID int64
	Kind      Kind
	Message   string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// NewTransaction creates a statement line for accountID.
func NewTransaction(accountID int64, kind Kind, amount decimal.Decimal) *Transaction {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Transaction{
		ID:        id,
		AccountID: accountID,
		Kind:      kind,
		Message:   kind.Message(),
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTransactionFromData hydrates a Transaction from a store row.
func NewTransactionFromData(
	id uuid.UUID,
	accountID int64,
	kind Kind,
	message string,
	amount decimal.Decimal,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:        id,
		AccountID: accountID,
		Kind:      kind,
		Message:   message,
		Amount:    amount,
		CreatedAt: created,
	}
}

// Delta is the signed change the transaction applies to the balance.
func (t *Transaction) Delta() decimal.Decimal {
	if t.Kind.Debit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Date is the statement date, formatted as the legacy tables store it.
func (t *Transaction) Date() string {
	return t.CreatedAt.Format(time.DateOnly)
}
