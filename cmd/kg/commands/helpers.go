package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/kg-client/internal/config"
	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
	"github.com/fivetwenty-io/kg-client/pkg/kgclient"
)

const defaultJSONIndent = 2

// Common static errors used throughout the commands package.
var (
	ErrLoginFailed       = errors.New("device login did not yield a token")
	ErrDeleteNotApproved = errors.New("deletion not confirmed, pass --force to skip the prompt")
	ErrInvalidParam      = errors.New("invalid query parameter, expected key=value")
	ErrNotFound          = errors.New("not found")
)

// cli carries the state shared by all commands of one invocation.
type cli struct {
	v *viper.Viper

	// secretPrompt reads a secret from the terminal; tests replace it.
	secretPrompt func(prompt string) (string, error)
}

func (a *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// newClient builds a client from the loaded configuration, prompting for a
// missing client secret when attached to a terminal.
func (a *cli) newClient(cmd *cobra.Command) (kg.Client, *config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.ClientID != "" && cfg.ClientSecret == "" && cfg.ClientToken == "" {
		cfg.ClientSecret, err = a.promptSecret("Client secret: ")
		if err != nil {
			return nil, nil, err
		}
	}

	clientConfig, err := cfg.ClientConfig(newLogger(cmd.ErrOrStderr(), cfg.Debug))
	if err != nil {
		return nil, nil, err
	}

	client, err := kgclient.New(cmd.Context(), clientConfig)
	if err != nil {
		return nil, nil, err
	}

	return client, cfg, nil
}

func (a *cli) promptSecret(prompt string) (string, error) {
	if a.secretPrompt != nil {
		return a.secretPrompt(prompt)
	}

	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", constants.ErrClientSecretRequired
	}

	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}

// render writes value in the configured format. table is only called for the
// table format.
func render(w io.Writer, format string, value any, table func(*tablewriter.Table)) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() {
			_ = encoder.Close()
		}()

		return encoder.Encode(value)
	default:
		t := tablewriter.NewWriter(w)
		table(t)

		err := t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// pageFlags are shared by every listing command.
type pageFlags struct {
	from int
	size int
	all  bool
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.from, "from", constants.DefaultStartFrom, "offset of the first item")
	cmd.Flags().IntVar(&p.size, "size", constants.DefaultPageSize, "number of items per page")
	cmd.Flags().BoolVar(&p.all, "all", false, "fetch all pages")
}

func (p *pageFlags) pagination() *kg.Pagination {
	return kg.DefaultPagination().WithStart(p.from).WithSize(p.size)
}

// collect returns the items of page, following the next pages when all is set.
func collect[T any](cmd *cobra.Command, flags *pageFlags, page *kg.ResultPage[T]) ([]T, error) {
	if !flags.all {
		return page.Data, nil
	}

	items, err := kg.FetchAll(cmd.Context(), page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all pages: %w", err)
	}

	return items, nil
}

// footer reports how much of a paginated listing was printed.
func footer[T any](w io.Writer, flags *pageFlags, page *kg.ResultPage[T], shown int) {
	if flags.all || page.Total == nil {
		return
	}

	if hasNext, _ := page.HasNextPage(); hasNext {
		fmt.Fprintf(w, "\nShowing %d of %d. Use --all to fetch all pages.\n", shown, *page.Total)
	}
}

func stageFlag(cfg *config.Config) kg.Stage {
	stage, err := kg.ParseStage(cfg.Stage)
	if err != nil {
		return kg.StageReleased
	}

	return stage
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
