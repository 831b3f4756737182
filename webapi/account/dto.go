package account

import (
	"time"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateAccountRequest opens an account. Balance defaults to zero.
type CreateAccountRequest struct {
	AccID   int64  `json:"acc_id" form:"acc_id" validate:"required,gt=0"`
	Balance string `json:"balance" form:"balance" validate:"omitempty,numeric"`
}

// ViewAccountRequest is read from the query string on GET and the body on POST.
type ViewAccountRequest struct {
	AccID int64 `json:"acc_id" form:"acc_id" query:"acc_id" validate:"required,gt=0"`
}

// AmountRequest carries the amount of a deposit, withdrawal or payment.
type AmountRequest struct {
	Amount string `json:"amount" form:"amount" validate:"required,numeric"`
}

// TransferRequest moves Amount from the path account to ToAccID.
type TransferRequest struct {
	Amount  string `json:"amount" form:"amount" validate:"required,numeric"`
	ToAccID int64  `json:"to_acc_id" form:"to_acc_id" validate:"required,gt=0"`
}

// StatementRequest asks for the last Number transactions.
type StatementRequest struct {
	AccID  int64 `json:"acc_id" form:"acc_id" query:"acc_id" validate:"required,gt=0"`
	Number int   `json:"number" form:"number" query:"number" validate:"omitempty,gte=0,lte=1000"`
}

type AccountDto struct {
	AccID     int64           `json:"acc_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type TransactionDto struct {
	TransID         string          `json:"trans_id"`
	AccID           int64           `json:"acc_id"`
	Kind            string          `json:"kind"`
	TransMessage    string          `json:"trans_message"`
	Amount          decimal.Decimal `json:"amount"`
	LastUpdatedDate string          `json:"last_updated_date"`
}

type PostingDto struct {
	Account     AccountDto     `json:"account"`
	Transaction TransactionDto `json:"transaction"`
}

func ToAccountDto(a *account.Account) AccountDto {
	return AccountDto{AccID: a.ID, Balance: a.Balance, UpdatedAt: a.UpdatedAt}
}

func ToTransactionDto(tx *account.Transaction) TransactionDto {
	return TransactionDto{
		TransID:         tx.ID.String(),
		AccID:           tx.AccountID,
		Kind:            string(tx.Kind),
		TransMessage:    tx.Message,
		Amount:          tx.Amount,
		LastUpdatedDate: tx.Date(),
	}
}

func ToTransactionDtos(txs []*account.Transaction) []TransactionDto {
	dtos := make([]TransactionDto, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, ToTransactionDto(tx))
	}
	return dtos
}
