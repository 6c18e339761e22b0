package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kgclient"
)

// NewLoginCommand creates the login command group.
func NewLoginCommand(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a user token",
		Long:  "Log in interactively and print a token for use with KG_TOKEN",
	}

	cmd.AddCommand(newLoginDeviceCommand(app))

	return cmd
}

func newLoginDeviceCommand(app *cli) *cobra.Command {
	var (
		clientID     string
		refreshToken string
	)

	cmd := &cobra.Command{
		Use:   "device",
		Short: "Log in with the device authorization flow",
		Long: `Log in through the identity provider of the configured KG host.

A verification URL and code are printed; open the URL in any browser and enter
the code. The resulting token is printed, it is not stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
			flowOpts := []kgclient.DeviceFlowOption{
				kgclient.WithDevicePrompt(kgclient.WritePrompt(cmd.ErrOrStderr())),
			}

			if refreshToken != "" {
				flowOpts = append(flowOpts, kgclient.WithRefreshToken(refreshToken))
			}

			provider := kgclient.DeviceFlow(clientID, []kgclient.ProviderOption{kgclient.WithProviderLogger(logger)}, flowOpts...)
			provider.DefineEndpoint(cmd.Context(), kgclient.BaseURL(cfg.Host))

			token := provider.FetchToken(cmd.Context(), false)
			if token == "" {
				return ErrLoginFailed
			}

			type loginResult struct {
				AccessToken  string `json:"access_token"            yaml:"access_token"`
				RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
			}

			result := loginResult{AccessToken: token, RefreshToken: provider.RefreshToken()}
			out := cmd.OutOrStdout()

			err = render(out, cfg.Output, result, func(table *tablewriter.Table) {
				table.Header("Token", "Value")
				_ = table.Append("Access Token", result.AccessToken)
				_ = table.Append("Refresh Token", orNotAvailable(result.RefreshToken))
			})
			if err != nil {
				return err
			}

			if cfg.Output == constants.FormatTable {
				fmt.Fprintf(out, "\nexport KG_TOKEN=%s\n", token)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "public client registered for the device flow (default kg-core-python)")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "try this refresh token before prompting")

	return cmd
}
