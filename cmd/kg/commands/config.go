package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/pkg/kgclient"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
		Long:  "Inspect the configuration assembled from flags, KG_* environment variables and the config file",
	}

	cmd.AddCommand(newConfigShowCommand(app))

	return cmd
}

func newConfigShowCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			masked := cfg.Masked()

			return render(cmd.OutOrStdout(), cfg.Output, masked, func(table *tablewriter.Table) {
				table.Header("Setting", "Value")
				_ = table.Append("Host", masked.Host)
				_ = table.Append("Base URL", kgclient.BaseURL(masked.Host))
				_ = table.Append("Stage", masked.Stage)
				_ = table.Append("ID Namespace", masked.IDNamespace)
				_ = table.Append("Token", orNotAvailable(masked.Token))
				_ = table.Append("Client ID", orNotAvailable(masked.ClientID))
				_ = table.Append("Client Secret", orNotAvailable(masked.ClientSecret))
				_ = table.Append("Client Token", orNotAvailable(masked.ClientToken))
				_ = table.Append("Debug", strconv.FormatBool(masked.Debug))
			})
		},
	}
}
