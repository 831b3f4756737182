package main

import (
	"context"
	"time"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/chatbot"
	"github.com/amirasaad/finlabs/pkg/search"
	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	client := search.New(
		infra_aws.NewSignedClient(rt.AWS, cfg.Search.Service, 10*time.Second),
		cfg.Search.Endpoint,
		cfg.Search.Index,
	)
	h := chatbot.New(client, rt.Logger)
	lambda.Start(h.Dispatch)
}
