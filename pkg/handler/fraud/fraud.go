// Package fraud scores card transactions arriving on a Kinesis stream with
// a SageMaker endpoint and keeps the ones flagged as fraud.
package fraud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/google/uuid"
)

const (
	// DateLayout is day/month/year, as the fraud analysts read it.
	DateLayout = "02/01/2006 15:04:05"

	fraudLabel = 1
)

var ErrNoPrediction = errors.New("endpoint returned no prediction")

// Record is a transaction the model flagged.
type Record struct {
	ID             string  `dynamodbav:"id"`
	DateTime       string  `dynamodbav:"datetime"`
	Score          float64 `dynamodbav:"score"`
	RawTransaction string  `dynamodbav:"raw_transaction"`
}

// Prediction is the first entry of the endpoint response.
type Prediction struct {
	Score          float64 `json:"score"`
	PredictedLabel float64 `json:"predicted_label"`
}

func (p Prediction) Fraud() bool { return p.PredictedLabel == fraudLabel }

type Handler struct {
	sagemaker awsapi.SageMakerRuntimeClient
	db        awsapi.DynamoDBClient
	endpoint  string
	table     string
	once      *common.Once
	logger    *slog.Logger
	now       func() time.Time
}

func New(
	sagemaker awsapi.SageMakerRuntimeClient,
	db awsapi.DynamoDBClient,
	endpoint, table string,
	once *common.Once,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sagemaker: sagemaker,
		db:        db,
		endpoint:  endpoint,
		table:     table,
		once:      once,
		logger:    common.Logger(logger),
		now:       time.Now,
	}
}

// Handle scores every record. Records that fail are reported for retry;
// sequence numbers already handled are skipped.
func (h *Handler) Handle(ctx context.Context, e events.KinesisEvent) (events.KinesisEventResponse, error) {
	if err := common.Require(map[string]string{"FRAUD_ENDPOINT_NAME": h.endpoint}); err != nil {
		return events.KinesisEventResponse{}, err
	}
	var failures common.Failures
	flagged := 0
	for _, r := range e.Records {
		seq := r.Kinesis.SequenceNumber
		log := h.logger.With("sequence_number", seq)
		var fraud bool
		_, err := h.once.Do(ctx, "fraud:"+seq, func(ctx context.Context) error {
			var err error
			fraud, err = h.process(ctx, string(r.Kinesis.Data))
			return err
		})
		if err != nil {
			log.Error("Transaction scoring failed", "error", err)
			failures.Add(seq)
			continue
		}
		if fraud {
			flagged++
		}
	}
	h.logger.Info("Successfully processed transactions",
		"records", len(e.Records),
		"flagged", flagged,
		"failed", failures.Len(),
	)
	return failures.Kinesis(), nil
}

func (h *Handler) process(ctx context.Context, payload string) (bool, error) {
	p, err := h.Score(ctx, payload)
	if err != nil {
		return false, err
	}
	if !p.Fraud() {
		return false, nil
	}
	h.logger.Warn("This looks like a fraud...", "score", p.Score)
	return true, common.PutItem(ctx, h.db, h.table, Record{
		ID:             uuid.NewString(),
		DateTime:       h.now().Format(DateLayout),
		Score:          p.Score,
		RawTransaction: payload,
	})
}

// Score sends one CSV transaction to the endpoint.
func (h *Handler) Score(ctx context.Context, payload string) (Prediction, error) {
	out, err := h.sagemaker.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(h.endpoint),
		ContentType:  aws.String("text/csv"),
		Body:         []byte(payload),
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("invoke endpoint %s: %w", h.endpoint, err)
	}
	var result struct {
		Predictions []Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(out.Body, &result); err != nil {
		return Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}
	if len(result.Predictions) == 0 {
		return Prediction{}, ErrNoPrediction
	}
	return result.Predictions[0], nil
}
