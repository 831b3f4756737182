package main

import (
	"context"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/loan"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	clients := loan.Clients{S3: infra_aws.NewS3(rt.AWS), SFN: sfn.NewFromConfig(rt.AWS)}
	h := loan.New(clients, loan.Settings{
		StateMachineArn: cfg.Loan.StateMachineArn,
		Table:           cfg.Dynamo.LoanTable,
		Language:        cfg.Loan.Language,
	}, rt.Logger)
	lambda.Start(h.Trigger)
}
