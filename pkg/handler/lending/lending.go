// Package lending moves coder check-ins through an SQS queue into the
// checkinData table.
package lending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

var ErrMissingCoderID = errors.New("check-in has no coder_id")

// CheckIn is the queued message.
type CheckIn struct {
	CoderID   string `json:"coder_id"`
	SpotID    string `json:"spot_id"`
	Timestamp int64  `json:"timestamp"`
}

// Record is the checkinData item.
type Record struct {
	CoderID   string `dynamodbav:"coderId"`
	Timestamp int64  `dynamodbav:"timestamp"`
	SpotID    string `dynamodbav:"spotID"`
}

type Producer struct {
	sqs    awsapi.SQSClient
	cfg    config.Lending
	logger *slog.Logger
	now    func() time.Time
}

func NewProducer(client awsapi.SQSClient, cfg config.Lending, logger *slog.Logger) *Producer {
	return &Producer{sqs: client, cfg: cfg, logger: common.Logger(logger), now: time.Now}
}

// Handle publishes one check-in stamped with the current time in
// milliseconds and returns the queue's message id.
func (p *Producer) Handle(ctx context.Context) (string, error) {
	if err := common.Require(map[string]string{"LENDING_QUEUE_URL": p.cfg.QueueURL}); err != nil {
		return "", err
	}
	body, err := json.Marshal(CheckIn{
		CoderID:   p.cfg.CoderID,
		SpotID:    p.cfg.SpotID,
		Timestamp: p.now().UnixMilli(),
	})
	if err != nil {
		return "", err
	}
	out, err := p.sqs.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.cfg.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return "", fmt.Errorf("send check-in: %w", err)
	}
	p.logger.Info("Check-in queued", "message_id", aws.ToString(out.MessageId), "coder_id", p.cfg.CoderID)
	return aws.ToString(out.MessageId), nil
}

type Consumer struct {
	db     awsapi.DynamoDBClient
	table  string
	once   *common.Once
	logger *slog.Logger
}

func NewConsumer(db awsapi.DynamoDBClient, table string, once *common.Once, logger *slog.Logger) *Consumer {
	return &Consumer{db: db, table: table, once: once, logger: common.Logger(logger)}
}

// Handle stores every check-in. Malformed or failed messages are returned
// as batch item failures so only they go back to the queue.
func (c *Consumer) Handle(ctx context.Context, e events.SQSEvent) (events.SQSEventResponse, error) {
	var failures common.Failures
	for _, msg := range e.Records {
		log := c.logger.With("message_id", msg.MessageId)
		skipped, err := c.once.Do(ctx, "checkin:"+msg.MessageId, func(ctx context.Context) error {
			return c.store(ctx, msg.Body)
		})
		switch {
		case err != nil:
			log.Error("Check-in failed", "error", err)
			failures.Add(msg.MessageId)
		case skipped:
			log.Info("🔁 [SKIP] Check-in already stored")
		}
	}
	c.logger.Info("Check-ins processed", "records", len(e.Records), "failed", failures.Len())
	return failures.SQS(), nil
}

func (c *Consumer) store(ctx context.Context, body string) error {
	var in CheckIn
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return fmt.Errorf("decode check-in: %w", err)
	}
	if in.CoderID == "" {
		return ErrMissingCoderID
	}
	return common.PutItem(ctx, c.db, c.table, Record{
		CoderID:   in.CoderID,
		Timestamp: in.Timestamp,
		SpotID:    in.SpotID,
	})
}
