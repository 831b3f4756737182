package main

import (
	"context"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/analytics"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	h := analytics.New(dynamodb.NewFromConfig(rt.AWS), cfg.Dynamo.AnalyticsTable, rt.Logger)
	lambda.Start(h.Handle)
}
