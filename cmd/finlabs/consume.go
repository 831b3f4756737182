package main

import (
	"github.com/amirasaad/finlabs/infra/eventbus"
	"github.com/amirasaad/finlabs/pkg/handler/stocks"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"
)

func consumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Run long-lived stream consumers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stocks",
		Short: "Store stock orders from Kafka into DynamoDB until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			awsCfg, err := awsConfig(cmd.Context())
			if err != nil {
				return err
			}
			reader := stocks.NewReader(eventbus.ParseBrokers(app.Kafka.Brokers), app.Kafka.StockTopic, app.Kafka.StockGroup)
			defer reader.Close()

			c := stocks.NewConsumer(reader, dynamodb.NewFromConfig(awsCfg), app.Dynamo.StockTable, logger)
			return c.Run(cmd.Context())
		},
	})
	return cmd
}
