package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	firehosetypes "github.com/aws/aws-sdk-go-v2/service/firehose/types"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/segmentio/kafka-go"
)

// FraudPartitionKey is the partition key replayed transactions are sent with.
const FraudPartitionKey = "partitionkey"

// FirehoseSink buffers JSON records and ships them with PutRecordBatch.
type FirehoseSink struct {
	client  awsapi.FirehoseClient
	stream  string
	size    int
	pending []firehosetypes.Record
	batches int
}

// NewFirehoseSink flushes every size records (500, the API maximum, when
// size is not positive).
func NewFirehoseSink(client awsapi.FirehoseClient, stream string, size int) *FirehoseSink {
	if size <= 0 || size > 500 {
		size = 500
	}
	return &FirehoseSink{client: client, stream: stream, size: size}
}

func (s *FirehoseSink) Send(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.pending = append(s.pending, firehosetypes.Record{Data: data})
	if len(s.pending) >= s.size {
		return s.Flush(ctx)
	}
	return nil
}

// Flush ships whatever is buffered. Records Firehose rejects stay buffered
// for the next Flush; accepted ones are dropped.
func (s *FirehoseSink) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	out, err := s.client.PutRecordBatch(ctx, &firehose.PutRecordBatchInput{
		DeliveryStreamName: aws.String(s.stream),
		Records:            s.pending,
	})
	if err != nil {
		return fmt.Errorf("put record batch %d to %s: %w", s.batches, s.stream, err)
	}
	if failed := aws.ToInt32(out.FailedPutCount); failed > 0 {
		s.pending = rejected(s.pending, out.RequestResponses)
		return fmt.Errorf("put record batch %d to %s: %d records failed", s.batches, s.stream, failed)
	}
	s.pending = s.pending[:0]
	s.batches++
	return nil
}

// rejected keeps the records whose response carries an error code. Without
// one response per record there is no telling which failed, so all are kept.
func rejected(records []firehosetypes.Record, responses []firehosetypes.PutRecordBatchResponseEntry) []firehosetypes.Record {
	if len(responses) != len(records) {
		return records
	}
	var keep []firehosetypes.Record
	for i, r := range responses {
		if r.ErrorCode != nil {
			keep = append(keep, records[i])
		}
	}
	return keep
}

// Batches reports how many batches were shipped.
func (s *FirehoseSink) Batches() int { return s.batches }

// MessageWriter is the part of *kafka.Writer the sink uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var _ MessageWriter = (*kafka.Writer)(nil)

// KafkaSink publishes JSON records to a topic.
type KafkaSink struct {
	writer MessageWriter
}

func NewKafkaSink(w MessageWriter) *KafkaSink {
	return &KafkaSink{writer: w}
}

// NewKafkaWriter returns a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func (s *KafkaSink) Send(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, kafka.Message{Value: data})
}

// KinesisSink puts single CSV rows onto a stream.
type KinesisSink struct {
	client awsapi.KinesisClient
	stream string
}

func NewKinesisSink(client awsapi.KinesisClient, stream string) *KinesisSink {
	return &KinesisSink{client: client, stream: stream}
}

func (s *KinesisSink) Send(ctx context.Context, row string) error {
	_, err := s.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(s.stream),
		Data:         []byte(row),
		PartitionKey: aws.String(FraudPartitionKey),
	})
	if err != nil {
		return fmt.Errorf("put record to %s: %w", s.stream, err)
	}
	return nil
}
