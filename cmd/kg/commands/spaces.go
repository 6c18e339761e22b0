package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/internal/constants"
)

// NewSpacesCommand creates the spaces command group.
func NewSpacesCommand(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"space"},
		Short:   "Inspect spaces",
		Long:    "List and inspect Knowledge Graph spaces",
	}

	cmd.AddCommand(newSpacesListCommand(app))
	cmd.AddCommand(newSpacesGetCommand(app))

	return cmd
}

func newSpacesListCommand(app *cli) *cobra.Command {
	var (
		permissions bool
		paging      pageFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spaces",
		Long:  "List all spaces the user can read",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			page, err := client.Spaces().List(cmd.Context(), permissions, paging.pagination())
			if err != nil {
				return fmt.Errorf("failed to list spaces: %w", err)
			}

			spaces, err := collect(cmd, &paging, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(spaces) == 0 && cfg.Output == constants.FormatTable {
				fmt.Fprintln(out, "No spaces found")

				return nil
			}

			err = render(out, cfg.Output, spaces, func(table *tablewriter.Table) {
				table.Header("Name", "Identifier", "Permissions")

				for _, space := range spaces {
					_ = table.Append(space.Name, space.Identifier, strings.Join(space.Permissions, ", "))
				}
			})
			if err != nil {
				return err
			}

			footer(out, &paging, page, len(spaces))

			return nil
		},
	}

	cmd.Flags().BoolVar(&permissions, "permissions", false, "include the user's permissions per space")
	paging.register(cmd)

	return cmd
}

func newSpacesGetCommand(app *cli) *cobra.Command {
	var permissions bool

	cmd := &cobra.Command{
		Use:   "get SPACE",
		Short: "Get space details",
		Long:  "Display details of a specific space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			res, err := client.Spaces().Get(cmd.Context(), args[0], permissions)
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			if res.Data == nil {
				return fmt.Errorf("%w: space %q", ErrNotFound, args[0])
			}

			space := res.Data

			return render(cmd.OutOrStdout(), cfg.Output, space, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Name", space.Name)
				_ = table.Append("Identifier", space.Identifier)
				_ = table.Append("Permissions", orNotAvailable(strings.Join(space.Permissions, ", ")))
			})
		},
	}

	cmd.Flags().BoolVar(&permissions, "permissions", false, "include the user's permissions")

	return cmd
}
