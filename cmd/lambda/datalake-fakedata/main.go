package main

import (
	"context"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/generator"
	"github.com/amirasaad/finlabs/pkg/handler/datalake"
	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	h := datalake.New(infra_aws.NewS3(rt.AWS), *cfg.Buckets, generator.New(cfg.Generators.Seed), cfg.Generators.Rows, rt.Logger)
	lambda.Start(h.FakeData)
}
