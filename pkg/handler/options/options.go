// Package options splits an options portfolio into jobs and evaluates them.
// Split runs as the first state of the batch workflow; Evaluate prices one
// or more job files and writes their results next to them.
package options

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/amirasaad/finlabs/pkg/options"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultChunkSize = 10
	maxConcurrency   = 8
)

// SplitEvent is the state machine input.
type SplitEvent struct {
	Bucket       string `json:"bucket_name"`
	InputFile    string `json:"input_file"`
	OutputFolder string `json:"output_folder"`
}

// EvaluateEvent names the job files to price.
type EvaluateEvent struct {
	Bucket       string   `json:"bucket_name"`
	Files        []string `json:"files"`
	OutputFolder string   `json:"output_folder"`
}

// Report is the content of a result file.
type Report struct {
	Results []options.Result `json:"results"`
}

type Handler struct {
	s3        awsapi.S3Client
	chunkSize int
	steps     int
	logger    *slog.Logger
}

// New builds the handler. steps is the binomial tree depth for American
// options that do not carry their own.
func New(client awsapi.S3Client, chunkSize, steps int, logger *slog.Logger) *Handler {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if steps <= 0 {
		steps = options.DefaultSteps
	}
	return &Handler{s3: client, chunkSize: chunkSize, steps: steps, logger: common.Logger(logger)}
}

// Chunk cuts items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	var chunks [][]T
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

// JobKey is where chunk i of input is uploaded.
func JobKey(outputFolder, input string, i int) string {
	return fmt.Sprintf("%s/jobs/%s_%d.json", outputFolder, path.Base(input), i)
}

// ResultKey is where the results of job file name are uploaded.
func ResultKey(outputFolder, name string) string {
	return fmt.Sprintf("%s/results/%s.result.json", outputFolder, path.Base(name))
}

// Split downloads the portfolio, uploads it in chunks and returns the keys
// of the job files in chunk order. Portfolio entries are copied into the
// jobs untouched.
func (h *Handler) Split(ctx context.Context, e SplitEvent) ([]string, error) {
	if err := common.Require(map[string]string{
		"bucket_name":   e.Bucket,
		"input_file":    e.InputFile,
		"output_folder": e.OutputFolder,
	}); err != nil {
		return nil, err
	}
	log := h.logger.With("handler", "options.Split", "bucket", e.Bucket, "input", e.InputFile)
	log.Info("Split started")

	var portfolio []json.RawMessage
	if err := h.readJSON(ctx, e.Bucket, e.InputFile, &portfolio); err != nil {
		log.Error("Split failed: portfolio unreadable", "error", err)
		return nil, err
	}

	chunks := Chunk(portfolio, h.chunkSize)
	keys := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, chunk := range chunks {
		keys[i] = JobKey(e.OutputFolder, e.InputFile, i)
		g.Go(func() error {
			body, err := json.Marshal(chunk)
			if err != nil {
				return err
			}
			return common.WriteObject(gctx, h.s3, e.Bucket, keys[i], "application/json", body)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Split failed: upload", "error", err)
		return nil, err
	}
	log.Info("Split successful", "options", len(portfolio), "jobs", len(keys))
	return keys, nil
}

// Evaluate prices every job file concurrently and returns the result keys.
// A single option that cannot be priced is reported inside its result file;
// an unreadable job file fails the whole call.
func (h *Handler) Evaluate(ctx context.Context, e EvaluateEvent) ([]string, error) {
	if err := common.Require(map[string]string{
		"bucket_name":   e.Bucket,
		"output_folder": e.OutputFolder,
	}); err != nil {
		return nil, err
	}
	log := h.logger.With("handler", "options.Evaluate", "bucket", e.Bucket)
	log.Info("Evaluate started", "files", len(e.Files))

	keys := make([]string, len(e.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, file := range e.Files {
		keys[i] = ResultKey(e.OutputFolder, file)
		g.Go(func() error {
			var portfolio []options.Option
			if err := h.readJSON(gctx, e.Bucket, file, &portfolio); err != nil {
				return err
			}
			report := Report{Results: options.EvaluateAll(portfolio, h.steps)}
			failed := 0
			for _, r := range report.Results {
				if r.Error != "" {
					failed++
				}
			}
			body, err := json.Marshal(report)
			if err != nil {
				return err
			}
			if err := common.WriteObject(gctx, h.s3, e.Bucket, keys[i], "application/json", body); err != nil {
				return err
			}
			log.Info("Job evaluated", "file", file, "options", len(portfolio), "failed", failed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Evaluate failed", "error", err)
		return nil, err
	}
	log.Info("Evaluate successful", "results", len(keys))
	return keys, nil
}

func (h *Handler) readJSON(ctx context.Context, bucket, key string, v any) error {
	data, err := common.ReadObject(ctx, h.s3, bucket, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode portfolio %s: %w", key, err)
	}
	return nil
}
