package main

import (
	"context"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/sentiment"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	h := sentiment.New(
		transcribe.NewFromConfig(rt.AWS),
		infra_aws.NewS3(rt.AWS),
		nil,
		*cfg.Buckets,
		*cfg.Transcribe,
		rt.Logger,
	)
	lambda.Start(h.Handle)
}
