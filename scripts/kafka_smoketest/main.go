package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/finlabs/infra/eventbus"
	"github.com/amirasaad/finlabs/pkg/generator"
	"github.com/amirasaad/finlabs/pkg/handler/stocks"
	"github.com/segmentio/kafka-go"
)

// RunSmokeTest publishes one generated stock order and reads it back
// through the consumer group the stock consumer uses.
func RunSmokeTest() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	brokers := eventbus.ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}
	topic := strings.TrimSpace(os.Getenv("KAFKA_STOCK_TOPIC"))
	if topic == "" {
		topic = "stock_transactions"
	}
	group := "smoketest-" + time.Now().Format("20060102150405")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		logger.Error("dial failed", "error", err)
		return err
	}
	err = conn.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	_ = conn.Close()
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		logger.Error("create topic failed", "topic", topic, "error", err)
		return err
	}

	writer := generator.NewKafkaWriter(brokers, topic)
	defer func() { _ = writer.Close() }()

	order := generator.New(time.Now().UnixNano()).StockOrder(nil)
	if err := generator.NewKafkaSink(writer).Send(ctx, order); err != nil {
		logger.Error("write failed", "topic", topic, "error", err)
		return err
	}
	logger.Info("produced", "topic", topic, "ticker", order.Ticker, "investor_id", order.InvestorID)

	reader := stocks.NewReader(brokers, topic, group)
	defer func() { _ = reader.Close() }()

	readCtx, cancelRead := context.WithTimeout(ctx, 15*time.Second)
	defer cancelRead()
	for {
		msg, err := reader.FetchMessage(readCtx)
		if err != nil {
			logger.Error("fetch failed", "topic", topic, "error", err)
			return err
		}
		got, err := stocks.Decode(msg.Value)
		if err != nil {
			logger.Warn("skipping undecodable message", "offset", msg.Offset, "error", err)
			continue
		}
		_ = reader.CommitMessages(ctx, msg)
		if got == order {
			logger.Info("kafka smoke test passed", "offset", msg.Offset)
			return nil
		}
	}
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	if err := RunSmokeTest(); err != nil {
		os.Exit(1)
	}
}
