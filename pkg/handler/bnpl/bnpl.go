// Package bnpl offers buy-now-pay-later plans to customers whose credit
// score clears the bar.
package bnpl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-resty/resty/v2"
)

const (
	MsgInsufficientScore = "Insufficient credit score. There are no BNPL options available."
	MsgScoreUnavailable  = "Error trying to get BNPL options."

	// openEndDate marks plans that are still offered.
	openEndDate = "null"
)

var headers = map[string]string{
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "OPTIONS,POST,GET",
}

type Handler struct {
	db     awsapi.DynamoDBClient
	http   *resty.Client
	table  string
	cfg    config.Credit
	logger *slog.Logger
}

// New builds the handler. httpClient should sign requests for the credit
// API (see infra/aws.NewSignedClient).
func New(db awsapi.DynamoDBClient, httpClient *resty.Client, table string, cfg config.Credit, logger *slog.Logger) *Handler {
	return &Handler{db: db, http: httpClient, table: table, cfg: cfg, logger: common.Logger(logger)}
}

// Handle answers GET /bnpl/{customer_id}. Every outcome is a 200 with a
// message or the list of open plans, which is what the storefront expects.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if err := common.Require(map[string]string{
		"CREDIT_ENDPOINT": h.cfg.Endpoint,
		"PLANS_TABLE":     h.table,
	}); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	customerID := req.PathParameters["customer_id"]
	if customerID == "" {
		return respond(http.StatusBadRequest, map[string]string{"message": "customer_id is required"})
	}
	log := h.logger.With("handler", "bnpl.Handle", "customer_id", customerID)

	score, err := h.Score(ctx, customerID)
	if err != nil {
		log.Error("Credit score lookup failed", "error", err)
		return respond(http.StatusOK, map[string]string{"message": MsgScoreUnavailable})
	}
	if score < h.cfg.MinScore {
		log.Info("Credit score below minimum", "score", score)
		return respond(http.StatusOK, map[string]string{"message": MsgInsufficientScore})
	}

	plans, err := h.OpenPlans(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	log.Info("Found installments", "plans", len(plans))
	return respond(http.StatusOK, plans)
}

// Score asks the credit API for the customer's score.
func (h *Handler) Score(ctx context.Context, customerID string) (float64, error) {
	var body struct {
		Score json.Number `json:"score"`
	}
	resp, err := h.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&body).
		Get(strings.TrimRight(h.cfg.Endpoint, "/") + "/" + url.PathEscape(customerID))
	if err != nil {
		return 0, err
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("credit api: status %d", resp.StatusCode())
	}
	return body.Score.Float64()
}

// OpenPlans scans the plans table for plans without an end date.
func (h *Handler) OpenPlans(ctx context.Context) ([]map[string]any, error) {
	filter := expression.Name("end_date").Equal(expression.Value(openEndDate))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, err
	}
	plans := []map[string]any{}
	pages := dynamodb.NewScanPaginator(h.db, &dynamodb.ScanInput{
		TableName:                 aws.String(h.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", h.table, err)
		}
		var batch []map[string]any
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		plans = append(plans, batch...)
	}
	return plans, nil
}

func respond(status int, v any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	h := make(map[string]string, len(headers))
	for k, val := range headers {
		h[k] = val
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Headers: h, Body: string(body)}, nil
}
