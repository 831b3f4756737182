// Package stocks holds the stock exchange workloads: the template API and
// the consumer that lands orders from the stock_transactions topic.
package stocks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultMessage = "Template message created"

// Template answers the informational API. With no table configured the id
// is echoed back.
type Template struct {
	db     awsapi.DynamoDBClient
	table  string
	logger *slog.Logger
}

func NewTemplate(db awsapi.DynamoDBClient, table string, logger *slog.Logger) *Template {
	return &Template{db: db, table: table, logger: common.Logger(logger)}
}

func (t *Template) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	msg := defaultMessage
	if id := req.QueryStringParameters["id"]; id != "" {
		msg = t.message(ctx, id)
	}
	headers := make(map[string]string, len(common.CORSHeaders))
	for k, v := range common.CORSHeaders {
		headers[k] = v
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: headers, Body: msg}, nil
}

// message looks id up in the app table, falling back to the bare id when
// the table is not configured, unreachable or has no such item.
func (t *Template) message(ctx context.Context, id string) string {
	fallback := fmt.Sprintf("Template with message id = %s", id)
	if t.table == "" || t.db == nil {
		return fallback
	}
	log := t.logger.With("handler", "stocks.Template", "id", id)
	out, err := t.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.table),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		log.Warn("Template lookup failed", "error", err)
		return fallback
	}
	if out.Item == nil {
		log.Info("No template item with this id")
		return fallback
	}
	var item struct {
		Message string `dynamodbav:"message"`
	}
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil || item.Message == "" {
		return fallback
	}
	return fmt.Sprintf("Template with message %s", item.Message)
}
