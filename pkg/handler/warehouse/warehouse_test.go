package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func crawlerIn(state gluetypes.CrawlerState) *glue.GetCrawlerOutput {
	return &glue.GetCrawlerOutput{Crawler: &gluetypes.Crawler{Name: aws.String("cards"), State: state}}
}

func settings() config.Warehouse {
	return config.Warehouse{WorkflowName: "etl", CrawlerName: "cards", CrawlerPollInterval: time.Millisecond}
}

func TestWorkflow(t *testing.T) {
	g := mocks.NewMockGlueClient(t)
	g.On("StartWorkflowRun", mock.Anything, mock.MatchedBy(func(in *glue.StartWorkflowRunInput) bool {
		return *in.Name == "etl"
	})).Return(&glue.StartWorkflowRunOutput{RunId: aws.String("wr_1")}, nil).Once()

	id, err := New(g, settings(), nil).Workflow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wr_1", id)
}

func TestWorkflow_Errors(t *testing.T) {
	_, err := New(nil, config.Warehouse{}, nil).Workflow(context.Background())
	assert.ErrorIs(t, err, common.ErrMissingSetting)

	g := mocks.NewMockGlueClient(t)
	g.On("StartWorkflowRun", mock.Anything, mock.Anything).Return(nil, errors.New("ConcurrentRunsExceeded")).Once()
	_, err = New(g, settings(), nil).Workflow(context.Background())
	assert.ErrorContains(t, err, "start workflow etl")
}

func TestCrawler_WaitsWhileRunning(t *testing.T) {
	g := mocks.NewMockGlueClient(t)
	g.On("StartCrawler", mock.Anything, mock.Anything).Return(&glue.StartCrawlerOutput{}, nil).Once()
	g.On("GetCrawler", mock.Anything, mock.Anything).Return(crawlerIn(gluetypes.CrawlerStateRunning), nil).Twice()
	g.On("GetCrawler", mock.Anything, mock.Anything).Return(crawlerIn(gluetypes.CrawlerStateStopping), nil).Once()

	res, err := New(g, settings(), nil).Crawler(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CrawlerResult{Started: true, State: "STOPPING"}, res)
}

func TestCrawler_NotStarted(t *testing.T) {
	for name, startErr := range map[string]error{
		"running": &gluetypes.CrawlerRunningException{Message: aws.String("busy")},
		"missing": &gluetypes.EntityNotFoundException{Message: aws.String("no crawler")},
	} {
		t.Run(name, func(t *testing.T) {
			g := mocks.NewMockGlueClient(t)
			g.On("StartCrawler", mock.Anything, mock.Anything).Return(nil, startErr).Once()
			res, err := New(g, settings(), nil).Crawler(context.Background())
			require.NoError(t, err)
			assert.False(t, res.Started)
		})
	}
}

func TestCrawler_ContextCancelled(t *testing.T) {
	g := mocks.NewMockGlueClient(t)
	g.On("StartCrawler", mock.Anything, mock.Anything).Return(&glue.StartCrawlerOutput{}, nil).Once()
	g.On("GetCrawler", mock.Anything, mock.Anything).Return(crawlerIn(gluetypes.CrawlerStateRunning), nil)

	cfg := settings()
	cfg.CrawlerPollInterval = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	res, err := New(g, cfg, nil).Crawler(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, res.Started)
}
