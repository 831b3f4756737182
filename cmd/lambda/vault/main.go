package main

import (
	"context"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/handler/vault"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	log "github.com/charmbracelet/log"
)

func main() {
	rt, err := initializer.InitializeLambda(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	cfg := rt.Config
	h := vault.New(
		infra_aws.NewS3(rt.AWS),
		sts.NewFromConfig(rt.AWS),
		macie2.NewFromConfig(rt.AWS),
		*cfg.Vault,
		rt.Logger,
	)
	lambda.Start(h.Handle)
}
