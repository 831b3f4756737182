// Package transactions bulk loads a JSON export of card transactions from
// S3 into DynamoDB.
package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// BatchSize is the BatchWriteItem limit.
	BatchSize = 25

	maxAttempts = 5
)

var ErrUnprocessed = errors.New("items left unprocessed")

// Upload names the export to load and the table to load it into.
type Upload struct {
	Bucket string
	Key    string
	Table  string
}

type Handler struct {
	s3      awsapi.S3Client
	db      awsapi.DynamoDBClient
	upload  Upload
	logger  *slog.Logger
	backoff time.Duration
}

func New(s3 awsapi.S3Client, db awsapi.DynamoDBClient, upload Upload, logger *slog.Logger) *Handler {
	return &Handler{s3: s3, db: db, upload: upload, logger: common.Logger(logger), backoff: 100 * time.Millisecond}
}

// Result is returned to the caller.
type Result struct {
	StatusCode int `json:"statusCode"`
	Loaded     int `json:"loaded"`
}

// Handle downloads the export and writes every item.
func (h *Handler) Handle(ctx context.Context) (Result, error) {
	if err := common.Require(map[string]string{
		"BUCKET_UPLOAD":       h.upload.Bucket,
		"BUCKET_UPLOAD_KEY":   h.upload.Key,
		"DYNAMO_UPLOAD_TABLE": h.upload.Table,
	}); err != nil {
		return Result{}, err
	}
	log := h.logger.With("handler", "transactions.Handle", "table", h.upload.Table, "key", h.upload.Key)
	log.Info("Upload started")

	data, err := common.ReadObject(ctx, h.s3, h.upload.Bucket, h.upload.Key)
	if err != nil {
		return Result{}, err
	}
	items, err := Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", h.upload.Key, err)
	}
	if err := h.Write(ctx, items); err != nil {
		log.Error("Couldn't load data into table", "error", err)
		return Result{}, err
	}
	log.Info("Loaded data into table", "items", len(items))
	return Result{StatusCode: 200, Loaded: len(items)}, nil
}

// Decode reads a JSON array of items. Numbers keep their literal text so
// integers beyond float64 precision reach DynamoDB unchanged.
func Decode(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	for _, item := range items {
		for k, v := range item {
			item[k] = numbers(v)
		}
	}
	return items, nil
}

// numbers swaps json.Number for attributevalue.Number, which marshals as
// an N attribute instead of a string.
func numbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		return attributevalue.Number(t)
	case map[string]any:
		for k, e := range t {
			t[k] = numbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = numbers(e)
		}
	}
	return v
}

// Write puts items in batches of BatchSize, resubmitting whatever
// DynamoDB reports as unprocessed.
func (h *Handler) Write(ctx context.Context, items []map[string]any) error {
	for start := 0; start < len(items); start += BatchSize {
		end := min(start+BatchSize, len(items))
		requests := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			av, err := attributevalue.MarshalMap(item)
			if err != nil {
				return fmt.Errorf("marshal item: %w", err)
			}
			requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
		}
		if err := h.writeBatch(ctx, requests); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) writeBatch(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{h.upload.Table: requests}
	wait := h.backoff
	for attempt := 1; ; attempt++ {
		out, err := h.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("batch write %s: %w", h.upload.Table, err)
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		if attempt == maxAttempts {
			return fmt.Errorf("%w: %d after %d attempts", ErrUnprocessed, len(out.UnprocessedItems[h.upload.Table]), attempt)
		}
		pending = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}
