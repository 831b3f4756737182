package datalake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// VotesResult is what the stream handler returns.
type VotesResult struct {
	events.DynamoDBEventResponse
	Message string `json:"message"`
}

// Votes adds one vote per new or changed ballot to the totals table.
type Votes struct {
	db     awsapi.DynamoDBClient
	table  string
	once   *common.Once
	logger *slog.Logger
}

func NewVotes(db awsapi.DynamoDBClient, table string, once *common.Once, logger *slog.Logger) *Votes {
	return &Votes{db: db, table: table, once: once, logger: common.Logger(logger)}
}

// ballot extracts improvement and region when both are string attributes.
func ballot(r events.DynamoDBEventRecord) (improvement, region string, ok bool) {
	if r.EventName != string(events.DynamoDBOperationTypeInsert) && r.EventName != string(events.DynamoDBOperationTypeModify) {
		return "", "", false
	}
	img := r.Change.NewImage
	imp, okImp := img["improvement"]
	reg, okReg := img["region"]
	if !okImp || !okReg ||
		imp.DataType() != events.DataTypeString || reg.DataType() != events.DataTypeString {
		return "", "", false
	}
	return imp.String(), reg.String(), true
}

func (v *Votes) Handle(ctx context.Context, e events.DynamoDBEvent) (VotesResult, error) {
	var failures common.Failures
	for _, r := range e.Records {
		improvement, region, ok := ballot(r)
		if !ok {
			continue
		}
		log := v.logger.With("event_id", r.EventID, "improvement", improvement, "region", region)
		_, err := v.once.Do(ctx, "votes:"+r.EventID, func(ctx context.Context) error {
			return v.increment(ctx, improvement, region)
		})
		if err != nil {
			log.Error("Vote failed", "error", err)
			failures.Add(r.EventID)
			continue
		}
		log.Info("Vote counted")
	}
	return VotesResult{
		DynamoDBEventResponse: failures.DynamoDB(),
		Message:               fmt.Sprintf("Successfully processed %d records.", len(e.Records)),
	}, nil
}

func (v *Votes) increment(ctx context.Context, improvement, region string) error {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Add(expression.Name("total_votes"), expression.Value(1))).
		Build()
	if err != nil {
		return err
	}
	_, err = v.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(v.table),
		Key: map[string]types.AttributeValue{
			"improvement": &types.AttributeValueMemberS{Value: improvement},
			"region":      &types.AttributeValueMemberS{Value: region},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return err
}
