package main

import (
	"context"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/datalake"
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
	h := datalake.NewVotes(dynamodb.NewFromConfig(rt.AWS), cfg.Dynamo.VotesTable, rt.Once(), rt.Logger)
	lambda.Start(h.Handle)
}
