package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// labelProperties are tried in order to find a human readable instance label.
var labelProperties = []string{
	"https://openminds.ebrains.eu/vocab/fullName",
	"https://openminds.ebrains.eu/vocab/name",
	"https://openminds.ebrains.eu/vocab/lookupLabel",
	"http://schema.org/name",
}

// NewInstancesCommand creates the instances command group.
func NewInstancesCommand(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance", "i"},
		Short:   "Manage instances",
		Long:    "List, inspect and delete Knowledge Graph instances",
	}

	cmd.AddCommand(newInstancesListCommand(app))
	cmd.AddCommand(newInstancesGetCommand(app))
	cmd.AddCommand(newInstancesReleaseStatusCommand(app))
	cmd.AddCommand(newInstancesDeleteCommand(app))

	return cmd
}

func newInstancesListCommand(app *cli) *cobra.Command {
	var (
		space          string
		search         string
		filterProperty string
		filterValue    string
		paging         pageFlags
	)

	cmd := &cobra.Command{
		Use:   "list TYPE",
		Short: "List instances of a type",
		Long:  "List instances of a fully qualified type, e.g. https://openminds.ebrains.eu/core/Dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			opts := &kg.ListInstancesOptions{
				Stage:          stageFlag(cfg),
				Space:          space,
				SearchByLabel:  search,
				FilterProperty: filterProperty,
				FilterValue:    filterValue,
				Pagination:     paging.pagination(),
			}

			page, err := client.Instances().List(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to list instances: %w", err)
			}

			instances, err := collect(cmd, &paging, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(instances) == 0 && cfg.Output == constants.FormatTable {
				fmt.Fprintln(out, "No instances found")

				return nil
			}

			err = render(out, cfg.Output, instances, func(table *tablewriter.Table) {
				table.Header("UUID", "Label", "Space")

				for _, instance := range instances {
					_ = table.Append(orNotAvailable(instance.UUID), orNotAvailable(instanceLabel(instance)), orNotAvailable(instanceSpace(instance)))
				}
			})
			if err != nil {
				return err
			}

			footer(out, &paging, page, len(instances))

			return nil
		},
	}

	cmd.Flags().StringVar(&space, "space", "", "only list instances of this space")
	cmd.Flags().StringVar(&search, "search", "", "filter by label")
	cmd.Flags().StringVar(&filterProperty, "filter-property", "", "property to filter on")
	cmd.Flags().StringVar(&filterValue, "filter-value", "", "value the filter property must have")
	paging.register(cmd)

	return cmd
}

func newInstancesGetCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get an instance",
		Long:  "Display an instance by UUID or fully qualified identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			res, err := client.Instances().GetByID(cmd.Context(), args[0], &kg.GetInstanceOptions{Stage: stageFlag(cfg)})
			if err != nil {
				return fmt.Errorf("failed to get instance: %w", err)
			}

			if res.Data == nil {
				return fmt.Errorf("%w: instance %q", ErrNotFound, args[0])
			}

			instance := *res.Data

			// Documents are nested, a table only shows the top level.
			return render(cmd.OutOrStdout(), cfg.Output, instance, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("UUID", orNotAvailable(instance.UUID))
				_ = table.Append("ID", instance.InstanceID)
				_ = table.Append("Label", orNotAvailable(instanceLabel(instance)))
				_ = table.Append("Space", orNotAvailable(instanceSpace(instance)))
				_ = table.Append("Type", orNotAvailable(instanceTypes(instance)))
			})
		},
	}
}

func newInstancesReleaseStatusCommand(app *cli) *cobra.Command {
	var children bool

	cmd := &cobra.Command{
		Use:   "release-status ID...",
		Short: "Show release status",
		Long:  "Show whether instances are released, unreleased or changed since their release",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			scope := kg.ReleaseTreeScopeTopInstanceOnly
			if children {
				scope = kg.ReleaseTreeScopeChildrenOnly
			}

			res, err := client.Instances().GetReleaseStatusByIDs(cmd.Context(), args, scope)
			if err != nil {
				return fmt.Errorf("failed to get release status: %w", err)
			}

			type statusRow struct {
				ID     string `json:"id"               yaml:"id"`
				Status string `json:"status,omitempty" yaml:"status,omitempty"`
				Error  string `json:"error,omitempty"  yaml:"error,omitempty"`
			}

			rows := make([]statusRow, 0, len(args))

			for _, id := range args {
				row := statusRow{ID: id}

				entry := res.Get(kg.ToUUID(id, cfg.IDNamespace))
				if entry == nil {
					entry = res.Get(id)
				}

				switch {
				case entry == nil:
					row.Error = "no status returned"
				case entry.Error != nil:
					row.Error = entry.Error.Error()
				case entry.Data != nil:
					row.Status = entry.Data.String()
				}

				rows = append(rows, row)
			}

			return render(cmd.OutOrStdout(), cfg.Output, rows, func(table *tablewriter.Table) {
				table.Header("ID", "Status", "Error")

				for _, row := range rows {
					_ = table.Append(row.ID, orNotAvailable(row.Status), row.Error)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&children, "children", false, "report the status of the children instead")

	return cmd
}

func newInstancesDeleteCommand(app *cli) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an instance",
		Long:  "Delete an instance from the in-progress stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Really delete instance %s? [y/N]: ", args[0])

				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					return ErrDeleteNotApproved
				}
			}

			client, _, err := app.newClient(cmd)
			if err != nil {
				return err
			}

			err = client.Instances().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete instance: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted instance %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func instanceLabel(instance kg.Instance) string {
	for _, property := range labelProperties {
		if value, ok := instance.Get(property).(string); ok && value != "" {
			return value
		}
	}

	return ""
}

func instanceSpace(instance kg.Instance) string {
	value, _ := instance.Get("https://core.kg.ebrains.eu/vocab/meta/space").(string)

	return value
}

func instanceTypes(instance kg.Instance) string {
	switch value := instance.Get("@type").(type) {
	case string:
		return value
	case []any:
		names := make([]string, 0, len(value))
		for _, item := range value {
			names = append(names, fmt.Sprint(item))
		}

		return strings.Join(names, ", ")
	default:
		return ""
	}
}
