package main

import (
	"context"
	"time"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/bnpl"
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
	h := bnpl.New(
		dynamodb.NewFromConfig(rt.AWS),
		infra_aws.NewSignedClient(rt.AWS, cfg.Credit.Service, 10*time.Second),
		cfg.Dynamo.PlansTable,
		*cfg.Credit,
		rt.Logger,
	)
	lambda.Start(h.Handle)
}
