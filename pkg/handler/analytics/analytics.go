// Package analytics is a Firehose transformation that copies every record
// into a DynamoDB table and passes it through unchanged.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
)

// Item is the stored copy of a record.
type Item struct {
	Timestamp string `dynamodbav:"timestamp"`
	Value     string `dynamodbav:"value"`
}

type Handler struct {
	db     awsapi.DynamoDBClient
	table  string
	logger *slog.Logger
	now    func() time.Time
}

func New(db awsapi.DynamoDBClient, table string, logger *slog.Logger) *Handler {
	return &Handler{db: db, table: table, logger: common.Logger(logger), now: time.Now}
}

// Handle answers every record: Ok when stored, ProcessingFailed otherwise,
// so Firehose only routes the failures to its error prefix.
func (h *Handler) Handle(ctx context.Context, e events.KinesisFirehoseEvent) (events.KinesisFirehoseResponse, error) {
	res := events.KinesisFirehoseResponse{
		Records: make([]events.KinesisFirehoseResponseRecord, 0, len(e.Records)),
	}
	failed := 0
	for _, r := range e.Records {
		out := events.KinesisFirehoseResponseRecord{
			RecordID: r.RecordID,
			Result:   events.KinesisFirehoseTransformedStateOk,
			Data:     r.Data,
		}
		err := common.PutItem(ctx, h.db, h.table, Item{
			Timestamp: h.now().UTC().Format(time.RFC3339Nano),
			Value:     string(r.Data),
		})
		if err != nil {
			h.logger.Error("Record copy failed", "record_id", r.RecordID, "error", err)
			out.Result = events.KinesisFirehoseTransformedStateProcessingFailed
			failed++
		}
		res.Records = append(res.Records, out)
	}
	h.logger.Info("Firehose batch processed", "records", len(e.Records), "failed", failed)
	return res, nil
}
