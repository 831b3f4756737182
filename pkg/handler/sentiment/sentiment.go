// Package sentiment transcribes recorded customer calls so the text can be
// scored downstream.
package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	transcribetypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	// OutputKey is where the latest transcript is written.
	OutputKey = "transcribeoutput.txt"

	jobNameLayout = "20060102T150405"
)

var (
	ErrJobFailed  = errors.New("transcription job failed")
	ErrJobTimeout = errors.New("transcription job did not finish")
	ErrNoRecords  = errors.New("event has no records")
)

// Transcript is the document Transcribe publishes for a finished job.
type Transcript struct {
	JobName string `json:"jobName"`
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// Text returns the first transcript alternative.
func (t Transcript) Text() string {
	if len(t.Results.Transcripts) == 0 {
		return ""
	}
	return t.Results.Transcripts[0].Transcript
}

type Handler struct {
	transcribe awsapi.TranscribeClient
	s3         awsapi.S3Client
	http       *resty.Client
	buckets    config.Buckets
	cfg        config.Transcribe
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

func New(
	tc awsapi.TranscribeClient,
	s3 awsapi.S3Client,
	httpClient *resty.Client,
	buckets config.Buckets,
	cfg config.Transcribe,
	logger *slog.Logger,
) *Handler {
	if httpClient == nil {
		httpClient = resty.New().SetTimeout(30 * time.Second)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 60
	}
	return &Handler{
		transcribe: tc,
		s3:         s3,
		http:       httpClient,
		buckets:    buckets,
		cfg:        cfg,
		logger:     common.Logger(logger),
		now:        time.Now,
		newID:      func() string { return uuid.NewString()[:8] },
	}
}

// JobName is sentiment- followed by the UTC timestamp and a random suffix,
// so invocations within the same second get distinct jobs.
func (h *Handler) JobName() string {
	return "sentiment-" + h.now().UTC().Format(jobNameLayout) + "-" + h.newID()
}

// Handle transcribes the mp3 named by the first record of e and uploads the
// transcript text.
func (h *Handler) Handle(ctx context.Context, e events.S3Event) (string, error) {
	if err := common.Require(map[string]string{
		"BUCKET_IN":  h.buckets.Media,
		"BUCKET_OUT": h.buckets.Transcripts,
	}); err != nil {
		return "", err
	}
	if len(e.Records) == 0 {
		return "", ErrNoRecords
	}
	job := h.JobName()
	uri := fmt.Sprintf("s3://%s/%s", h.buckets.Media, common.ObjectKey(e.Records[0]))
	log := h.logger.With("handler", "sentiment.Handle", "job", job, "media", uri)
	log.Info("Transcription started")

	_, err := h.transcribe.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(job),
		Media:                &transcribetypes.Media{MediaFileUri: aws.String(uri)},
		MediaFormat:          transcribetypes.MediaFormatMp3,
		LanguageCode:         transcribetypes.LanguageCodeEnUs,
	})
	if err != nil {
		return "", fmt.Errorf("start transcription job %s: %w", job, err)
	}

	transcriptURI, err := h.wait(ctx, job)
	if err != nil {
		log.Error("Transcription failed", "error", err)
		return "", err
	}

	transcript, err := h.fetch(ctx, transcriptURI)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(transcript.Text())
	if err != nil {
		return "", err
	}
	if err := common.WriteObject(ctx, h.s3, h.buckets.Transcripts, OutputKey, "text/plain", body); err != nil {
		return "", err
	}
	log.Info("Transcription successful", "transcript_job", transcript.JobName, "chars", len(transcript.Text()))
	return transcript.Text(), nil
}

// wait polls the job until it completes and returns the transcript URI.
func (h *Handler) wait(ctx context.Context, job string) (string, error) {
	ticker := time.NewTicker(h.cfg.PollInterval)
	defer ticker.Stop()
	for range h.cfg.MaxPolls {
		out, err := h.transcribe.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
			TranscriptionJobName: aws.String(job),
		})
		if err != nil {
			return "", fmt.Errorf("get transcription job %s: %w", job, err)
		}
		tj := out.TranscriptionJob
		if tj == nil {
			return "", fmt.Errorf("get transcription job %s: empty response", job)
		}
		switch tj.TranscriptionJobStatus {
		case transcribetypes.TranscriptionJobStatusCompleted:
			if tj.Transcript == nil {
				return "", fmt.Errorf("%w: %s has no transcript", ErrJobFailed, job)
			}
			return aws.ToString(tj.Transcript.TranscriptFileUri), nil
		case transcribetypes.TranscriptionJobStatusFailed:
			return "", fmt.Errorf("%w: %s", ErrJobFailed, aws.ToString(tj.FailureReason))
		}
		h.logger.Info("Waiting for transcription job", "job", job, "status", tj.TranscriptionJobStatus)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
	return "", fmt.Errorf("%w: %s after %d polls", ErrJobTimeout, job, h.cfg.MaxPolls)
}

func (h *Handler) fetch(ctx context.Context, uri string) (Transcript, error) {
	var transcript Transcript
	resp, err := h.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&transcript).
		Get(uri)
	if err != nil {
		return transcript, fmt.Errorf("download transcript: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return transcript, fmt.Errorf("download transcript: status %d", resp.StatusCode())
	}
	return transcript, nil
}
