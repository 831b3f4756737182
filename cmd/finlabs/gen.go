package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/finlabs/infra"
	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/eventbus"
	"github.com/amirasaad/finlabs/pkg/generator"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cardsFile = "dataexport.csv"

func genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate synthetic datasets",
	}
	cmd.PersistentFlags().Int("rows", 0, "rows to generate (default: GEN_ROWS)")
	_ = viper.BindPFlag("gen.rows", cmd.PersistentFlags().Lookup("rows"))

	cmd.AddCommand(genCartCmd())
	cmd.AddCommand(genCardsCmd())
	cmd.AddCommand(genFraudCmd())
	cmd.AddCommand(genStockFirehoseCmd())
	cmd.AddCommand(genStockKafkaCmd())
	cmd.AddCommand(genLendingCmd())
	return cmd
}

func genCartCmd() *cobra.Command {
	var output, bucket string
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Write an abandoned cart dataset",
		Long: `Write an abandoned cart CSV locally, or straight into the data lake
input bucket when --bucket is set.

Examples:
  finlabs gen cart --rows 500
  finlabs gen cart --bucket my-datalake-input`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := generator.New(app.Generators.Seed).Cart(app.Generators.Rows)
			var buf bytes.Buffer
			if err := generator.WriteCartCSV(&buf, rows); err != nil {
				return err
			}
			if bucket == "" {
				return writeFile(output, buf.Bytes(), len(rows))
			}
			awsCfg, err := awsConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err := common.WriteObject(cmd.Context(), infra_aws.NewS3(awsCfg), bucket, output, "text/csv", buf.Bytes()); err != nil {
				return fmt.Errorf("upload %s: %w", output, err)
			}
			logger.Info("Cart dataset uploaded", "bucket", bucket, "key", output, "rows", len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", generator.CartFile, "file name (or object key with --bucket)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "upload to this bucket instead of writing a file")
	return cmd
}

func genCardsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Write a card transactions CSV for the current month",
		RunE: func(_ *cobra.Command, _ []string) error {
			rows := generator.New(app.Generators.Seed).Cards(app.Generators.Rows)
			var buf bytes.Buffer
			if err := generator.WriteCardsCSV(&buf, rows); err != nil {
				return err
			}
			return writeFile(output, buf.Bytes(), len(rows))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", cardsFile, "output file")
	return cmd
}

func genFraudCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "fraud <dataset.csv>",
		Short: "Replay a labelled card transaction dataset onto the fraud stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			awsCfg, err := awsConfig(cmd.Context())
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = app.Fraud.MaxRecords
			}
			sink := generator.NewKinesisSink(kinesis.NewFromConfig(awsCfg), app.Fraud.StreamName)
			bar := progressbar.Default(int64(limit), "replaying")
			sent, err := generator.ReplayFraudCSV(f, limit, func(_ int, row string) error {
				if err := sink.Send(cmd.Context(), row); err != nil {
					return err
				}
				return bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				logger.Error("Fraud replay failed", "sent", sent, "error", err)
				return err
			}
			logger.Info("Fraud replay successful", "stream", app.Fraud.StreamName, "sent", sent)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "max", 0, "stop after this many rows (default: FRAUD_MAX_RECORDS)")
	return cmd
}

func genStockFirehoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock-firehose",
		Short: "Ship stock orders to the Firehose delivery stream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tickers, err := loadTickers(app.Generators.TickersFile)
			if err != nil {
				return err
			}
			awsCfg, err := awsConfig(cmd.Context())
			if err != nil {
				return err
			}
			sink := generator.NewFirehoseSink(firehose.NewFromConfig(awsCfg), app.Generators.StockStream, app.Generators.FirehoseBatch)
			err = sendOrders(app.Generators.Rows, tickers, func(order generator.StockOrder) error {
				return sink.Send(cmd.Context(), order)
			})
			if err == nil {
				err = sink.Flush(cmd.Context())
			}
			if err != nil {
				logger.Error("Stock orders failed", "stream", app.Generators.StockStream, "error", err)
				return err
			}
			logger.Info("Stock orders shipped", "stream", app.Generators.StockStream, "batches", sink.Batches())
			return nil
		},
	}
}

func genStockKafkaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock-kafka",
		Short: "Publish stock orders to the Kafka topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tickers, err := loadTickers(app.Generators.TickersFile)
			if err != nil {
				return err
			}
			writer := generator.NewKafkaWriter(eventbus.ParseBrokers(app.Kafka.Brokers), app.Kafka.StockTopic)
			defer writer.Close()

			sink := generator.NewKafkaSink(writer)
			err = sendOrders(app.Generators.Rows, tickers, func(order generator.StockOrder) error {
				return sink.Send(cmd.Context(), order)
			})
			if err != nil {
				logger.Error("Stock orders failed", "topic", app.Kafka.StockTopic, "error", err)
				return err
			}
			logger.Info("Stock orders published", "topic", app.Kafka.StockTopic, "orders", app.Generators.Rows)
			return nil
		},
	}
}

func genLendingCmd() *cobra.Command {
	var batch int
	cmd := &cobra.Command{
		Use:   "lending",
		Short: "Fill the MySQL lending_table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := infra.NewLendingConnection(app.DB.LendingUrl, app.Env)
			if err != nil {
				return err
			}
			w := generator.NewLendingWriter(db, batch)
			if err := w.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate lending_table: %w", err)
			}
			g := generator.New(app.Generators.Seed)
			bar := progressbar.Default(int64(app.Generators.Rows), "inserting")
			err = w.Write(cmd.Context(), app.Generators.Rows, g.Lending, func(n int) { _ = bar.Add(n) })
			_ = bar.Finish()
			if err != nil {
				logger.Error("Lending rows failed", "error", err)
				return err
			}
			logger.Info("Lending rows inserted", "rows", app.Generators.Rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&batch, "batch", 100, "rows per commit")
	return cmd
}

// sendOrders draws n orders and hands them to send with a progress bar.
func sendOrders(n int, tickers []string, send func(generator.StockOrder) error) error {
	g := generator.New(app.Generators.Seed)
	bar := progressbar.Default(int64(n), "orders")
	defer bar.Finish()
	for i := 0; i < n; i++ {
		if err := send(g.StockOrder(tickers)); err != nil {
			return fmt.Errorf("order %d: %w", i+1, err)
		}
		_ = bar.Add(1)
	}
	return nil
}

// loadTickers reads the tickers file, falling back to the built-in list
// when the file does not exist.
func loadTickers(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Tickers file not found, using defaults", "path", path)
		return generator.DefaultTickers, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return generator.ReadTickers(f)
}

func writeFile(path string, data []byte, rows int) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	logger.Info("Dataset written", "path", path, "rows", rows)
	return nil
}
