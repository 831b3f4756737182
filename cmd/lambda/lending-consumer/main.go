package main

import (
	"context"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/lending"
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
	h := lending.NewConsumer(dynamodb.NewFromConfig(rt.AWS), cfg.Dynamo.CheckinTable, rt.Once(), rt.Logger)
	lambda.Start(h.Handle)
}
