// Package openfinance serves the bank-data table over API Gateway and seeds
// it from a CloudFormation custom resource.
package openfinance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	resourceItems = "/items"
	resourceItem  = "/items/{id}"
)

var ErrItemNotFound = errors.New("item not found")

// Customer is the seed record written on stack creation.
type Customer struct {
	ID              string `dynamodbav:"id" json:"id"`
	FirstName       string `dynamodbav:"FirstName" json:"FirstName"`
	LastName        string `dynamodbav:"LastName" json:"LastName"`
	CheckingBalance string `dynamodbav:"CheckingBalance" json:"CheckingBalance"`
	SavingsBalance  string `dynamodbav:"SavingsBalance" json:"SavingsBalance"`
	MortgageBalance string `dynamodbav:"MortgageBalance" json:"MortgageBalance"`
	CCBalance       string `dynamodbav:"CCBalance" json:"CCBalance"`
}

// SeedCustomer is the record the import resource creates.
var SeedCustomer = Customer{
	ID:              "56438794",
	FirstName:       "Mateo",
	LastName:        "Jackson",
	CheckingBalance: "575.82",
	SavingsBalance:  "10256.23",
	MortgageBalance: "255645.59",
	CCBalance:       "74.25",
}

type Handler struct {
	db     awsapi.DynamoDBClient
	table  string
	logger *slog.Logger
}

func New(db awsapi.DynamoDBClient, table string, logger *slog.Logger) *Handler {
	return &Handler{db: db, table: table, logger: common.Logger(logger)}
}

// API routes GET /items and GET /items/{id}.
func (h *Handler) API(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.logger.With("method", req.HTTPMethod, "resource", req.Resource, "path", req.Path)
	if req.HTTPMethod != http.MethodGet {
		return common.ErrorResponse(http.StatusMethodNotAllowed, "method not allowed")
	}

	switch req.Resource {
	case resourceItems:
		items, err := h.Items(ctx)
		if err != nil {
			log.Error("Scan failed", "error", err)
			return common.ErrorResponse(http.StatusInternalServerError, "could not list items")
		}
		return common.JSONResponse(http.StatusOK, items)
	case resourceItem:
		id := itemID(req)
		if id == "" {
			return common.ErrorResponse(http.StatusBadRequest, "missing id")
		}
		item, err := h.Item(ctx, id)
		if errors.Is(err, ErrItemNotFound) {
			return common.NotFound()
		}
		if err != nil {
			log.Error("Get item failed", "id", id, "error", err)
			return common.ErrorResponse(http.StatusInternalServerError, "could not load item")
		}
		return common.JSONResponse(http.StatusOK, item)
	default:
		log.Warn("Unknown resource")
		return common.NotFound()
	}
}

// itemID reads the id from the path parameters, the last path segment or
// the id query parameter, in that order.
func itemID(req events.APIGatewayProxyRequest) string {
	if id := req.PathParameters["id"]; id != "" {
		return id
	}
	parts := strings.Split(strings.Trim(req.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "items" {
		return parts[len(parts)-1]
	}
	return req.QueryStringParameters["id"]
}

// Items scans the whole table.
func (h *Handler) Items(ctx context.Context) ([]map[string]any, error) {
	items := []map[string]any{}
	pages := dynamodb.NewScanPaginator(h.db, &dynamodb.ScanInput{TableName: aws.String(h.table)})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []map[string]any
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

// Item returns one record by id.
func (h *Handler) Item(ctx context.Context, id string) (map[string]any, error) {
	out, err := h.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(h.table),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	var item map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Import is the custom resource body: it writes the seed customer when the
// stack is created and leaves the table alone on update and delete. Wrap it
// with cfn.LambdaWrap.
func (h *Handler) Import(ctx context.Context, e cfn.Event) (string, map[string]any, error) {
	log := h.logger.With("request_type", e.RequestType, "logical_resource_id", e.LogicalResourceID)
	if e.RequestType != cfn.RequestCreate {
		log.Info("Nothing to do")
		return e.LogicalResourceID, map[string]any{"status": "NONE"}, nil
	}
	if err := common.PutItem(ctx, h.db, h.table, SeedCustomer); err != nil {
		log.Error("Failed to create the record", "error", err)
		return e.LogicalResourceID, nil, err
	}
	log.Info("Successfully created the record")
	return e.LogicalResourceID, map[string]any{"status": "Successfully created the record"}, nil
}
