// Package dynamo implements the account ledger on DynamoDB. Balance changes
// are conditional writes committed in the same TransactWriteItems call as the
// statement line, so concurrent withdrawals can never overdraw an account.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/amirasaad/finlabs/pkg/repository"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const conditionalCheckFailed = "ConditionalCheckFailed"

// Ledger is a repository.AccountRepository backed by an accounts table keyed
// by acc_id and a transactions table keyed by (acc_id, trans_id).
type Ledger struct {
	client            awsapi.DynamoDBClient
	accountsTable     string
	transactionsTable string
	now               func() time.Time
}

var _ repository.AccountRepository = (*Ledger)(nil)

func NewLedger(client awsapi.DynamoDBClient, accountsTable, transactionsTable string) *Ledger {
	return &Ledger{
		client:            client,
		accountsTable:     accountsTable,
		transactionsTable: transactionsTable,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func accountKey(id int64) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]int64{"acc_id": id})
}

func (l *Ledger) Get(ctx context.Context, id int64) (*account.Account, error) {
	key, err := accountKey(id)
	if err != nil {
		return nil, err
	}
	out, err := l.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(l.accountsTable),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, account.ErrAccountNotFound
	}
	var item accountItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("decode account %d: %w", id, err)
	}
	return item.toDomain()
}

func (l *Ledger) List(ctx context.Context) ([]*account.Account, error) {
	pages := dynamodb.NewScanPaginator(l.client, &dynamodb.ScanInput{
		TableName: aws.String(l.accountsTable),
	})
	var accounts []*account.Account
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan accounts: %w", err)
		}
		var items []accountItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("decode accounts: %w", err)
		}
		for _, item := range items {
			a, err := item.toDomain()
			if err != nil {
				return nil, err
			}
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (l *Ledger) Create(ctx context.Context, a *account.Account) error {
	item, err := attributevalue.MarshalMap(accountItem{
		AccID:     a.ID,
		Balance:   Amount(a.Balance),
		UpdatedAt: l.now(),
	})
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("acc_id"))).
		Build()
	if err != nil {
		return err
	}
	_, err = l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(l.accountsTable),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return account.ErrAccountExists
	}
	if err != nil {
		return fmt.Errorf("create account %d: %w", a.ID, err)
	}
	return nil
}

// balanceUpdate adds delta to the balance of id, guarded so that the row
// must exist and the result must stay non-negative.
func (l *Ledger) balanceUpdate(id int64, delta decimal.Decimal) (*types.Update, error) {
	key, err := accountKey(id)
	if err != nil {
		return nil, err
	}
	cond := expression.AttributeExists(expression.Name("acc_id"))
	if delta.IsNegative() {
		cond = cond.And(expression.Name("balance").GreaterThanEqual(expression.Value(Amount(delta.Neg()))))
	}
	update := expression.
		Set(expression.Name("balance"), expression.Name("balance").Plus(expression.Value(Amount(delta)))).
		Set(expression.Name("updated_at"), expression.Value(l.now()))
	expr, err := expression.NewBuilder().WithCondition(cond).WithUpdate(update).Build()
	if err != nil {
		return nil, err
	}
	return &types.Update{
		TableName:                           aws.String(l.accountsTable),
		Key:                                 key,
		UpdateExpression:                    expr.Update(),
		ConditionExpression:                 expr.Condition(),
		ExpressionAttributeNames:            expr.Names(),
		ExpressionAttributeValues:           expr.Values(),
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}, nil
}

func (l *Ledger) transactionPut(tx *account.Transaction) (*types.Put, error) {
	item, err := attributevalue.MarshalMap(newTransactionItem(tx))
	if err != nil {
		return nil, err
	}
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("trans_id"))).
		Build()
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(l.transactionsTable),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	}, nil
}

func (l *Ledger) Post(ctx context.Context, tx *account.Transaction) (*account.Account, error) {
	update, err := l.balanceUpdate(tx.AccountID, tx.Delta())
	if err != nil {
		return nil, err
	}
	put, err := l.transactionPut(tx)
	if err != nil {
		return nil, err
	}
	_, err = l.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
			{Put: put},
		},
	})
	if err != nil {
		return nil, translateCancellation(err, tx.AccountID)
	}
	return l.Get(ctx, tx.AccountID)
}

func (l *Ledger) Transfer(ctx context.Context, out, in *account.Transaction) (*account.Account, *account.Account, error) {
	debit, err := l.balanceUpdate(out.AccountID, out.Delta())
	if err != nil {
		return nil, nil, err
	}
	credit, err := l.balanceUpdate(in.AccountID, in.Delta())
	if err != nil {
		return nil, nil, err
	}
	outPut, err := l.transactionPut(out)
	if err != nil {
		return nil, nil, err
	}
	inPut, err := l.transactionPut(in)
	if err != nil {
		return nil, nil, err
	}
	_, err = l.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: debit},
			{Update: credit},
			{Put: outPut},
			{Put: inPut},
		},
	})
	if err != nil {
		return nil, nil, translateCancellation(err, out.AccountID, in.AccountID)
	}
	from, err := l.Get(ctx, out.AccountID)
	if err != nil {
		return nil, nil, err
	}
	to, err := l.Get(ctx, in.AccountID)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// translateCancellation maps the per-item reasons of a cancelled transaction
// onto domain errors. ids lists the account updated by each leading item.
func translateCancellation(err error, ids ...int64) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return fmt.Errorf("transact write: %w", err)
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) != conditionalCheckFailed || i >= len(ids) {
			continue
		}
		if len(reason.Item) == 0 {
			return fmt.Errorf("account %d: %w", ids[i], account.ErrAccountNotFound)
		}
		return account.ErrInsufficientFunds
	}
	return fmt.Errorf("transact write: %w", err)
}

func (l *Ledger) Statement(ctx context.Context, accountID int64, limit int) ([]*account.Transaction, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyEqual(expression.Key("acc_id"), expression.Value(accountID))).
		Build()
	if err != nil {
		return nil, err
	}
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(l.transactionsTable),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}
	out, err := l.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query statement %d: %w", accountID, err)
	}
	var items []transactionItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("decode statement %d: %w", accountID, err)
	}
	txs := make([]*account.Transaction, 0, len(items))
	for _, item := range items {
		tx, err := item.toDomain()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
