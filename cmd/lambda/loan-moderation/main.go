package main

import (
	"context"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/loan"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	clients := loan.Clients{Rekognition: rekognition.NewFromConfig(rt.AWS)}
	h := loan.New(clients, loan.Settings{
		StateMachineArn: cfg.Loan.StateMachineArn,
		Table:           cfg.Dynamo.LoanTable,
		Language:        cfg.Loan.Language,
	}, rt.Logger)
	lambda.Start(h.Moderation)
}
