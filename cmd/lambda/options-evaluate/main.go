package main

import (
	"context"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/options"
	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	h := options.New(infra_aws.NewS3(rt.AWS), cfg.Options.ChunkSize, cfg.Options.Steps, rt.Logger)
	lambda.Start(h.Evaluate)
}
