package dynamo

import (
	"fmt"
	"time"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amount stores a decimal as a DynamoDB number without going through float64.
type Amount decimal.Decimal

func (a Amount) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: decimal.Decimal(a).String()}, nil
}

func (a *Amount) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw string
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
	case *types.AttributeValueMemberNULL:
		*a = Amount(decimal.Zero)
		return nil
	default:
		return fmt.Errorf("amount: unsupported attribute type %T", av)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(d)
	return nil
}

type accountItem struct {
	AccID     int64     `dynamodbav:"acc_id"`
	Balance   Amount    `dynamodbav:"balance"`
	UpdatedAt time.Time `dynamodbav:"updated_at,omitempty"`
}

func (i accountItem) toDomain() (*account.Account, error) {
	return account.New().
		WithID(i.AccID).
		WithBalance(decimal.Decimal(i.Balance)).
		WithUpdatedAt(i.UpdatedAt).
		Build()
}

type transactionItem struct {
	TransID   string    `dynamodbav:"trans_id"`
	AccID     int64     `dynamodbav:"acc_id"`
	Kind      string    `dynamodbav:"kind"`
	Message   string    `dynamodbav:"trans_message"`
	Amount    Amount    `dynamodbav:"amount"`
	Date      string    `dynamodbav:"last_updated_date"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

func newTransactionItem(tx *account.Transaction) transactionItem {
	return transactionItem{
		TransID:   tx.ID.String(),
		AccID:     tx.AccountID,
		Kind:      string(tx.Kind),
		Message:   tx.Message,
		Amount:    Amount(tx.Amount),
		Date:      tx.Date(),
		CreatedAt: tx.CreatedAt,
	}
}

func (i transactionItem) toDomain() (*account.Transaction, error) {
	id, err := uuid.Parse(i.TransID)
	if err != nil {
		return nil, fmt.Errorf("trans_id %q: %w", i.TransID, err)
	}
	created := i.CreatedAt
	if created.IsZero() {
		// rows written before created_at existed only carry the date
		created, _ = time.Parse(time.DateOnly, i.Date)
	}
	return account.NewTransactionFromData(
		id, i.AccID, account.Kind(i.Kind), i.Message, decimal.Decimal(i.Amount), created,
	), nil
}
