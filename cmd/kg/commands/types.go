package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// NewTypesCommand creates the types command group.
func NewTypesCommand(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"type"},
		Short:   "Inspect types",
		Long:    "List the types known to the Knowledge Graph",
	}

	cmd.AddCommand(newTypesListCommand(app))

	return cmd
}

func newTypesListCommand(app *cli) *cobra.Command {
	var (
		space  string
		paging pageFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List types",
		Long:  "List types with their number of occurrences, optionally restricted to a space",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			opts := &kg.TypeOptions{
				Stage: stageFlag(cfg),
				Space: space,
			}

			page, err := client.Types().List(cmd.Context(), opts, paging.pagination())
			if err != nil {
				return fmt.Errorf("failed to list types: %w", err)
			}

			types, err := collect(cmd, &paging, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			err = render(out, cfg.Output, types, func(table *tablewriter.Table) {
				table.Header("Name", "Identifier", "Occurrences")

				for _, typ := range types {
					_ = table.Append(typ.Name, typ.Identifier, strconv.Itoa(typ.Occurrences))
				}
			})
			if err != nil {
				return err
			}

			footer(out, &paging, page, len(types))

			return nil
		},
	}

	cmd.Flags().StringVar(&space, "space", "", "only list types present in this space")
	paging.register(cmd)

	return cmd
}
