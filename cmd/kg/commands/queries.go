package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// NewQueriesCommand creates the queries command group.
func NewQueriesCommand(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queries",
		Aliases: []string{"query", "q"},
		Short:   "Run stored queries",
		Long:    "List and execute queries stored in the Knowledge Graph",
	}

	cmd.AddCommand(newQueriesRunCommand(app))
	cmd.AddCommand(newQueriesListCommand(app))

	return cmd
}

func newQueriesRunCommand(app *cli) *cobra.Command {
	var (
		instanceID string
		spaces     []string
		params     []string
		paging     pageFlags
	)

	cmd := &cobra.Command{
		Use:   "run QUERY_ID",
		Short: "Execute a stored query",
		Long:  "Execute a stored query and print the resulting documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			additional, err := parseParams(params)
			if err != nil {
				return err
			}

			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			opts := &kg.QueryOptions{
				Stage:                   stageFlag(cfg),
				InstanceID:              instanceID,
				RestrictToSpaces:        spaces,
				AdditionalRequestParams: additional,
				Pagination:              paging.pagination(),
			}

			page, err := client.Queries().ExecuteQueryByID(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to execute query: %w", err)
			}

			documents, err := collect(cmd, &paging, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			err = render(out, cfg.Output, documents, func(table *tablewriter.Table) {
				table.Header("#", "Document")

				for i, document := range documents {
					_ = table.Append(strconv.Itoa(paging.from+i+1), compact(document))
				}
			})
			if err != nil {
				return err
			}

			footer(out, &paging, page, len(documents))

			return nil
		},
	}

	cmd.Flags().StringVar(&instanceID, "instance", "", "run the query for a single instance")
	cmd.Flags().StringSliceVar(&spaces, "space", nil, "restrict the query to these spaces")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value, may be repeated")
	paging.register(cmd)

	return cmd
}

func newQueriesListCommand(app *cli) *cobra.Command {
	var (
		targetType string
		search     string
		paging     pageFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored queries",
		Long:  "List stored queries, optionally restricted to a root type",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			page, err := client.Queries().ListPerRootType(cmd.Context(), search, targetType, paging.pagination())
			if err != nil {
				return fmt.Errorf("failed to list queries: %w", err)
			}

			queries, err := collect(cmd, &paging, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			err = render(out, cfg.Output, queries, func(table *tablewriter.Table) {
				table.Header("UUID", "Label", "Space")

				for _, query := range queries {
					_ = table.Append(orNotAvailable(query.UUID), orNotAvailable(instanceLabel(query)), orNotAvailable(instanceSpace(query)))
				}
			})
			if err != nil {
				return err
			}

			footer(out, &paging, page, len(queries))

			return nil
		},
	}

	cmd.Flags().StringVar(&targetType, "type", "", "only list queries for this root type")
	cmd.Flags().StringVar(&search, "search", "", "filter by label")
	paging.register(cmd)

	return cmd
}

func parseParams(params []string) (map[string]string, error) {
	if len(params) == 0 {
		return nil, nil
	}

	parsed := make(map[string]string, len(params))

	for _, param := range params {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, param)
		}

		parsed[key] = value
	}

	return parsed, nil
}

func compact(document kg.JSONLDDocument) string {
	data, err := json.Marshal(document)
	if err != nil {
		return fmt.Sprint(document)
	}

	return string(data)
}
