package main

import (
	"context"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/fraud"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	h := fraud.New(
		sagemakerruntime.NewFromConfig(rt.AWS),
		dynamodb.NewFromConfig(rt.AWS),
		cfg.Fraud.EndpointName,
		cfg.Dynamo.FraudTable,
		rt.Once(),
		rt.Logger,
	)
	lambda.Start(h.Handle)
}
