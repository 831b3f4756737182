// Package loan implements the tasks of the loan application state machine:
// the S3 trigger that starts it, the sentiment and image moderation checks,
// and the OCR step that turns a scanned form into a loan_application item.
package loan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendtypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekognitiontypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// metadataMessage is the user metadata key carrying the applicant's note.
const metadataMessage = "message"

// Clients groups the services the loan tasks call. Each task only needs
// its own subset.
type Clients struct {
	S3          awsapi.S3Client
	SFN         awsapi.SFNClient
	Comprehend  awsapi.ComprehendClient
	Rekognition awsapi.RekognitionClient
	Textract    awsapi.TextractClient
	DynamoDB    awsapi.DynamoDBClient
}

// Settings name the state machine, table and language.
type Settings struct {
	StateMachineArn string
	Table           string
	Language        string
}

type Handler struct {
	c      Clients
	s      Settings
	logger *slog.Logger
	now    func() time.Time
}

func New(c Clients, s Settings, logger *slog.Logger) *Handler {
	if s.Language == "" {
		s.Language = "en"
	}
	return &Handler{c: c, s: s, logger: common.Logger(logger), now: time.Now}
}

type SentimentInput struct {
	Content string `json:"content"`
}

type SentimentOutput struct {
	Sentiment string `json:"sentiment"`
}

// Sentiment classifies the applicant's message.
func (h *Handler) Sentiment(ctx context.Context, in SentimentInput) (SentimentOutput, error) {
	out, err := h.c.Comprehend.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(in.Content),
		LanguageCode: comprehendtypes.LanguageCode(h.s.Language),
	})
	if err != nil {
		return SentimentOutput{}, fmt.Errorf("detect sentiment: %w", err)
	}
	h.logger.Info("Sentiment detected", "sentiment", out.Sentiment)
	return SentimentOutput{Sentiment: string(out.Sentiment)}, nil
}

type ModerationInput struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type ModerationOutput struct {
	SafeContent bool `json:"safe_content"`
}

// Moderation reports whether the uploaded image has no moderation labels.
func (h *Handler) Moderation(ctx context.Context, in ModerationInput) (ModerationOutput, error) {
	out, err := h.c.Rekognition.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image: &rekognitiontypes.Image{
			S3Object: &rekognitiontypes.S3Object{Bucket: aws.String(in.Bucket), Name: aws.String(in.Key)},
		},
	})
	if err != nil {
		return ModerationOutput{}, fmt.Errorf("detect moderation labels for s3://%s/%s: %w", in.Bucket, in.Key, err)
	}
	h.logger.Info("Moderation checked", "bucket", in.Bucket, "key", in.Key, "labels", len(out.ModerationLabels))
	return ModerationOutput{SafeContent: len(out.ModerationLabels) == 0}, nil
}

// ExecutionInput is what the state machine is started with.
type ExecutionInput struct {
	S3Info  S3Info  `json:"s3_info"`
	Message Message `json:"message"`
}

type S3Info struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type Message struct {
	Content string `json:"content"`
}

// Trigger starts one execution per uploaded object that carries a message
// in its user metadata and returns the execution ARNs.
func (h *Handler) Trigger(ctx context.Context, e events.S3Event) ([]string, error) {
	if err := common.Require(map[string]string{"LOAN_STATE_MACHINE_ARN": h.s.StateMachineArn}); err != nil {
		return nil, err
	}
	var arns []string
	for _, r := range e.Records {
		bucket, key := r.S3.Bucket.Name, common.ObjectKey(r)
		log := h.logger.With("bucket", bucket, "key", key)

		head, err := h.c.S3.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
		if err != nil {
			return arns, fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
		}
		content := head.Metadata[metadataMessage]
		if content == "" {
			log.Info("No metadata found in S3 image")
			continue
		}

		input, err := json.Marshal(ExecutionInput{
			S3Info:  S3Info{Bucket: bucket, Key: key},
			Message: Message{Content: content},
		})
		if err != nil {
			return arns, err
		}
		out, err := h.c.SFN.StartExecution(ctx, &sfn.StartExecutionInput{
			StateMachineArn: aws.String(h.s.StateMachineArn),
			Input:           aws.String(string(input)),
		})
		if err != nil {
			return arns, fmt.Errorf("start execution: %w", err)
		}
		log.Info("State machine started", "execution_arn", aws.ToString(out.ExecutionArn))
		arns = append(arns, aws.ToString(out.ExecutionArn))
	}
	return arns, nil
}
