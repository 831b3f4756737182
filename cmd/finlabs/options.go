package main

import (
	"strings"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	optionshandler "github.com/amirasaad/finlabs/pkg/handler/options"
	"github.com/spf13/cobra"
)

func optionsCmd() *cobra.Command {
	var bucket, input, output string
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Run the options pricing batch against S3",
	}
	cmd.PersistentFlags().StringVar(&bucket, "bucket", "", "bucket holding the portfolio")
	cmd.PersistentFlags().StringVar(&input, "input", "", "portfolio object key")
	cmd.PersistentFlags().StringVar(&output, "output", "", "output folder for jobs and results")
	for _, name := range []string{"bucket", "input", "output"} {
		_ = cmd.MarkPersistentFlagRequired(name)
	}

	newHandler := func(cmd *cobra.Command) (*optionshandler.Handler, error) {
		awsCfg, err := awsConfig(cmd.Context())
		if err != nil {
			return nil, err
		}
		return optionshandler.New(infra_aws.NewS3(awsCfg), app.Options.ChunkSize, app.Options.Steps, logger), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "split",
		Short: "Split the portfolio into job files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newHandler(cmd)
			if err != nil {
				return err
			}
			keys, err := h.Split(cmd.Context(), optionshandler.SplitEvent{Bucket: bucket, InputFile: input, OutputFolder: output})
			if err != nil {
				return err
			}
			cmd.Println(strings.Join(keys, "\n"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "batch",
		Short: "Split the portfolio and price every job file",
		Long: `Run the whole batch locally: split the portfolio into job files, then
price every job and write the result files next to them.

Example:
  finlabs options batch --bucket quant-lab --input portfolio.json --output run-42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newHandler(cmd)
			if err != nil {
				return err
			}
			jobs, err := h.Split(cmd.Context(), optionshandler.SplitEvent{Bucket: bucket, InputFile: input, OutputFolder: output})
			if err != nil {
				return err
			}
			results, err := h.Evaluate(cmd.Context(), optionshandler.EvaluateEvent{Bucket: bucket, Files: jobs, OutputFolder: output})
			if err != nil {
				return err
			}
			cmd.Println(strings.Join(results, "\n"))
			return nil
		},
	})
	return cmd
}
