// Package warehouse starts the Glue jobs that load the data warehouse: the
// ETL workflow after each upload and the crawler that refreshes the catalog.
package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
)

const defaultCrawlerPoll = 30 * time.Second

type Handler struct {
	glue   awsapi.GlueClient
	cfg    config.Warehouse
	logger *slog.Logger
}

func New(client awsapi.GlueClient, cfg config.Warehouse, logger *slog.Logger) *Handler {
	if cfg.CrawlerPollInterval <= 0 {
		cfg.CrawlerPollInterval = defaultCrawlerPoll
	}
	return &Handler{glue: client, cfg: cfg, logger: common.Logger(logger)}
}

// Workflow starts a run of the configured workflow and returns its id.
func (h *Handler) Workflow(ctx context.Context) (string, error) {
	if err := common.Require(map[string]string{"WAREHOUSE_WORKFLOW_NAME": h.cfg.WorkflowName}); err != nil {
		return "", err
	}
	out, err := h.glue.StartWorkflowRun(ctx, &glue.StartWorkflowRunInput{Name: aws.String(h.cfg.WorkflowName)})
	if err != nil {
		return "", fmt.Errorf("start workflow %s: %w", h.cfg.WorkflowName, err)
	}
	runID := aws.ToString(out.RunId)
	h.logger.Info("Started glue workflow", "workflow", h.cfg.WorkflowName, "run_id", runID)
	return runID, nil
}

// CrawlerResult reports whether the crawler was started and the state it
// settled in.
type CrawlerResult struct {
	Started bool   `json:"started"`
	State   string `json:"state,omitempty"`
}

// Crawler starts the crawler and waits while it is running. A crawler that
// is already running or does not exist is not an error; it is reported as
// not started.
func (h *Handler) Crawler(ctx context.Context) (CrawlerResult, error) {
	if err := common.Require(map[string]string{"WAREHOUSE_CRAWLER_NAME": h.cfg.CrawlerName}); err != nil {
		return CrawlerResult{}, err
	}
	name := h.cfg.CrawlerName
	log := h.logger.With("crawler", name)

	_, err := h.glue.StartCrawler(ctx, &glue.StartCrawlerInput{Name: aws.String(name)})
	var running *gluetypes.CrawlerRunningException
	var missing *gluetypes.EntityNotFoundException
	switch {
	case errors.As(err, &running):
		log.Info("Crawler already running, wait for it to stop and then try again")
		return CrawlerResult{}, nil
	case errors.As(err, &missing):
		log.Info("Crawler name provided does not exist")
		return CrawlerResult{}, nil
	case err != nil:
		return CrawlerResult{}, fmt.Errorf("start crawler %s: %w", name, err)
	}
	log.Info("Crawler started")

	ticker := time.NewTicker(h.cfg.CrawlerPollInterval)
	defer ticker.Stop()
	for {
		state, err := h.crawlerState(ctx, name)
		if err != nil {
			return CrawlerResult{Started: true}, err
		}
		if state != gluetypes.CrawlerStateRunning {
			log.Info("Crawler finished running", "state", state)
			return CrawlerResult{Started: true, State: string(state)}, nil
		}
		log.Info("Crawler is still running")
		select {
		case <-ctx.Done():
			return CrawlerResult{Started: true, State: string(state)}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (h *Handler) crawlerState(ctx context.Context, name string) (gluetypes.CrawlerState, error) {
	out, err := h.glue.GetCrawler(ctx, &glue.GetCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return "", fmt.Errorf("get crawler %s: %w", name, err)
	}
	if out.Crawler == nil {
		return "", fmt.Errorf("get crawler %s: empty response", name)
	}
	return out.Crawler.State, nil
}
