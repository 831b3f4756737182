package stocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/generator"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the consumer-group side of kafka.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewReader reads topic from the earliest offset as part of group.
func NewReader(brokers []string, topic, group string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     group,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
	})
}

// Consumer writes every order from the topic into the orders table.
type Consumer struct {
	reader  MessageReader
	db      awsapi.DynamoDBClient
	table   string
	logger  *slog.Logger
	backoff time.Duration
}

func NewConsumer(reader MessageReader, db awsapi.DynamoDBClient, table string, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader:  reader,
		db:      db,
		table:   table,
		logger:  common.Logger(logger).With("handler", "stocks.Consumer", "table", table),
		backoff: 500 * time.Millisecond,
	}
}

// Run consumes until ctx is cancelled. Undecodable messages are committed
// and dropped. A message that fails to store is retried until it succeeds,
// so a later commit never moves the group past it.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("Stock order consumer started")
	stored := 0
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				c.logger.Info("Stock order consumer stopped", "stored", stored)
				return nil
			}
			c.logger.Error("Fetch failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(c.backoff):
			}
			continue
		}

		log := c.logger.With("partition", msg.Partition, "offset", msg.Offset)
		order, err := Decode(msg.Value)
		if err != nil {
			log.Warn("Dropping undecodable order", "error", err)
		} else if err := c.store(ctx, log, order); err != nil {
			c.logger.Info("Stock order consumer stopped", "stored", stored)
			return nil
		} else {
			stored++
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Error("Commit failed", "error", err)
		}
	}
}

// store puts order, backing off between failures. It only gives up when
// ctx is done.
func (c *Consumer) store(ctx context.Context, log *slog.Logger, order generator.StockOrder) error {
	for {
		err := common.PutItem(ctx, c.db, c.table, order)
		if err == nil {
			return nil
		}
		log.Error("Order store failed", "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff):
		}
	}
}

// Decode parses one order message.
func Decode(value []byte) (generator.StockOrder, error) {
	var order generator.StockOrder
	if err := json.Unmarshal(value, &order); err != nil {
		return order, fmt.Errorf("decode order: %w", err)
	}
	if order.Ticker == "" {
		return order, errors.New("decode order: missing ticker")
	}
	return order, nil
}
