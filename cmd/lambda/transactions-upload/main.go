package main

import (
	"context"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/transactions"
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
	h := transactions.New(infra_aws.NewS3(rt.AWS), dynamodb.NewFromConfig(rt.AWS), transactions.Upload{
		Bucket: cfg.Buckets.Upload,
		Key:    cfg.Buckets.UploadKey,
		Table:  cfg.Dynamo.UploadTable,
	}, rt.Logger)
	lambda.Start(h.Handle)
}
