package aws

import (
	"context"
	"fmt"

	"github.com/amirasaad/finlabs/pkg/config"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Load resolves credentials the usual way (env, shared config, role)
// and applies the configured region. A non-empty endpoint routes every client
// to it, which is how the handlers run against LocalStack.
func Load(ctx context.Context, cfg *config.AWS) (sdkaws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return sdkaws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewS3 builds an S3 client, switching to path-style addressing when a
// custom endpoint is in use.
func NewS3(awsCfg sdkaws.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if awsCfg.BaseEndpoint != nil {
			o.UsePathStyle = true
		}
	})
}
