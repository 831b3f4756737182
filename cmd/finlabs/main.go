package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/config"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	version = "dev"

	// app and logger are populated by initConfig before any RunE.
	app    *config.App
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "finlabs",
		Short: "Data generators, batch jobs and ops tooling for the finlabs workloads",
		Long: `finlabs feeds the labs with synthetic data, runs the options batch
outside of Step Functions, owns the SQL ledger migrations and serves the
banking apps locally.

Settings come from the usual env file (.env), FINLABS_* variables and an
optional YAML profile passed with --config.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML profile (default: ./finlabs.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before the environment is read")
	rootCmd.PersistentFlags().Int64("seed", 0, "generator seed (0 picks a random one)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (json, text)")

	_ = viper.BindPFlag("gen.seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(genCmd())
	rootCmd.AddCommand(optionsCmd())
	rootCmd.AddCommand(consumeCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("finlabs")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FINLABS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	applyProfile(cfg)
	app = cfg
	logger = initializer.SetupLogger(cfg.Log)
	return nil
}

// applyProfile lets the YAML profile and FINLABS_* variables override the
// settings the CLI cares about. Unset keys keep the env config values.
func applyProfile(cfg *config.App) {
	if v := viper.GetString("log.format"); v != "" {
		cfg.Log.Format = v
	}
	if v := viper.GetInt64("gen.seed"); v != 0 {
		cfg.Generators.Seed = v
	}
	if v := viper.GetInt("gen.rows"); v > 0 {
		cfg.Generators.Rows = v
	}
	if v := viper.GetString("gen.stock_stream"); v != "" {
		cfg.Generators.StockStream = v
	}
	if v := viper.GetString("gen.tickers_file"); v != "" {
		cfg.Generators.TickersFile = v
	}
	if v := viper.GetString("kafka.brokers"); v != "" {
		cfg.Kafka.Brokers = v
	}
	if v := viper.GetString("fraud.stream_name"); v != "" {
		cfg.Fraud.StreamName = v
	}
	if v := viper.GetString("db.url"); v != "" {
		cfg.DB.Url = v
	}
	if v := viper.GetString("db.lending_url"); v != "" {
		cfg.DB.LendingUrl = v
	}
	if v := viper.GetString("aws.region"); v != "" {
		cfg.AWS.Region = v
	}
	if v := viper.GetString("aws.endpoint"); v != "" {
		cfg.AWS.Endpoint = v
	}
}

func awsConfig(ctx context.Context) (sdkaws.Config, error) {
	return infra_aws.Load(ctx, app.AWS)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the finlabs version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("finlabs %s\n", version)
		},
	}
}
