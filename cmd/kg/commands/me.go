package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewMeCommand creates the me command.
func NewMeCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Long:  "Display the profile of the user the configured token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			me, err := client.Users().MyInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if me.Data == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No user information returned")

				return nil
			}

			user := me.Data

			return render(cmd.OutOrStdout(), cfg.Output, user, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Name", orNotAvailable(user.Name))
				_ = table.Append("Username", orNotAvailable(user.AlternateName))
				_ = table.Append("Given Name", orNotAvailable(user.GivenName))
				_ = table.Append("Family Name", orNotAvailable(user.FamilyName))
				_ = table.Append("Email", orNotAvailable(user.Email))
				_ = table.Append("Identifiers", orNotAvailable(strings.Join(user.Identifiers, ", ")))
			})
		},
	}
}
