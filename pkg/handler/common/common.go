// Package common holds the plumbing shared by the Lambda handlers: S3 and
// DynamoDB helpers, partial batch failure bookkeeping and replay protection.
package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrMissingSetting is returned when a handler is invoked without a
// required bucket, table or endpoint name.
var ErrMissingSetting = errors.New("missing required setting")

// Logger returns l, or the default logger when l is nil.
func Logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// Require fails with ErrMissingSetting for the first empty value.
func Require(settings map[string]string) error {
	for name, value := range settings {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingSetting, name)
		}
	}
	return nil
}

// ReadObject downloads bucket/key into memory.
func ReadObject(ctx context.Context, client awsapi.S3Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close() // nolint: errcheck
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// WriteObject uploads body to bucket/key.
func WriteObject(ctx context.Context, client awsapi.S3Client, bucket, key, contentType string, body []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// PutItem marshals item with its dynamodbav tags and writes it to table.
func PutItem(ctx context.Context, client awsapi.DynamoDBClient, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item for %s: %w", table, err)
	}
	if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put item into %s: %w", table, err)
	}
	return nil
}

// Failures collects the identifiers of records that must be retried by a
// partial batch response.
type Failures struct {
	items []events.SQSBatchItemFailure
}

// Add records id as failed.
func (f *Failures) Add(id string) {
	f.items = append(f.items, events.SQSBatchItemFailure{ItemIdentifier: id})
}

// Len reports how many records failed.
func (f *Failures) Len() int { return len(f.items) }

// SQS returns the response for an SQS event source.
func (f *Failures) SQS() events.SQSEventResponse {
	return events.SQSEventResponse{BatchItemFailures: f.items}
}

// Kinesis returns the response for a Kinesis event source.
func (f *Failures) Kinesis() events.KinesisEventResponse {
	out := make([]events.KinesisBatchItemFailure, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, events.KinesisBatchItemFailure{ItemIdentifier: item.ItemIdentifier})
	}
	return events.KinesisEventResponse{BatchItemFailures: out}
}

// DynamoDB returns the response for a DynamoDB Streams event source.
func (f *Failures) DynamoDB() events.DynamoDBEventResponse {
	out := make([]events.DynamoDBBatchItemFailure, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, events.DynamoDBBatchItemFailure{ItemIdentifier: item.ItemIdentifier})
	}
	return events.DynamoDBEventResponse{BatchItemFailures: out}
}

// ObjectKey returns the decoded key of an S3 notification record.
func ObjectKey(r events.S3EventRecord) string {
	if r.S3.Object.URLDecodedKey != "" {
		return r.S3.Object.URLDecodedKey
	}
	return r.S3.Object.Key
}
