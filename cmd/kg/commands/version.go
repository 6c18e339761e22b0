package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/internal/config"
	"github.com/fivetwenty-io/kg-client/internal/constants"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(app *cli, version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the kg CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version    string `json:"version"     yaml:"version"`
				Commit     string `json:"commit"      yaml:"commit"`
				Built      string `json:"built"       yaml:"built"`
				APIVersion string `json:"api_version" yaml:"api_version"`
			}

			versionInfo := VersionInfo{
				Version:    version,
				Commit:     commit,
				Built:      date,
				APIVersion: constants.APIVersion,
			}

			format := app.v.GetString(config.KeyOutput)

			return render(cmd.OutOrStdout(), format, versionInfo, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Version", version)
				_ = table.Append("Commit", commit)
				_ = table.Append("Built", date)
				_ = table.Append("API Version", constants.APIVersion)
			})
		},
	}
}
