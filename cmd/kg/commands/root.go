// Package commands implements the kg command line interface.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/kg-client/internal/config"
)

// NewRootCommand creates the kg command tree. Every invocation gets its own
// viper instance so commands can be executed side by side in tests.
func NewRootCommand(version, commit, date string) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "kg",
		Short: "EBRAINS Knowledge Graph CLI",
		Long: `A command-line interface for the EBRAINS Knowledge Graph core API.

Credentials are read from KG_TOKEN, or KG_CLIENT_ID and KG_CLIENT_SECRET for a
service account. Settings can also be stored in $HOME/.kg/config.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(config.KeyConfigFile, "c", "", "config file (default is $HOME/.kg/config.yml)")
	flags.String(config.KeyHost, "", "KG core host, e.g. core.kg.ebrains.eu or localhost:8000")
	flags.StringP(config.KeyToken, "t", "", "user access token")
	flags.String("client-id", "", "service account client ID")
	flags.String(config.KeyStage, "", "stage to read from (RELEASED or IN_PROGRESS)")
	flags.StringP(config.KeyOutput, "o", "", "output format (table, json, yaml)")
	flags.BoolP(config.KeyDebug, "v", false, "log requests and responses to stderr")

	_ = v.BindPFlag(config.KeyConfigFile, flags.Lookup(config.KeyConfigFile))
	_ = v.BindPFlag(config.KeyHost, flags.Lookup(config.KeyHost))
	_ = v.BindPFlag(config.KeyToken, flags.Lookup(config.KeyToken))
	_ = v.BindPFlag(config.KeyClientID, flags.Lookup("client-id"))
	_ = v.BindPFlag(config.KeyStage, flags.Lookup(config.KeyStage))
	_ = v.BindPFlag(config.KeyOutput, flags.Lookup(config.KeyOutput))
	_ = v.BindPFlag(config.KeyDebug, flags.Lookup(config.KeyDebug))

	app := &cli{v: v}

	rootCmd.AddCommand(NewVersionCommand(app, version, commit, date))
	rootCmd.AddCommand(NewConfigCommand(app))
	rootCmd.AddCommand(NewMeCommand(app))
	rootCmd.AddCommand(NewSpacesCommand(app))
	rootCmd.AddCommand(NewTypesCommand(app))
	rootCmd.AddCommand(NewInstancesCommand(app))
	rootCmd.AddCommand(NewQueriesCommand(app))
	rootCmd.AddCommand(NewLoginCommand(app))

	return rootCmd
}
