package main

import (
	"fmt"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/webapi"
	accountweb "github.com/amirasaad/finlabs/webapi/account"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one of the banking apps",
	}
	for _, variant := range []accountweb.Variant{accountweb.VariantDeposit, accountweb.VariantMortgage} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(variant),
			Short: fmt.Sprintf("Serve the %s app", variant),
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps, err := initializer.InitializeDependencies(app)
				if err != nil {
					return fmt.Errorf("failed to initialize dependencies: %w", err)
				}
				return webapi.Serve(cmd.Context(), deps, variant)
			},
		})
	}
	return cmd
}
