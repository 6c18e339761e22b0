// Package config loads CLI settings from the environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
	"github.com/fivetwenty-io/kg-client/pkg/kgclient"
)

// Setting keys. Each is bound to the environment variable KG_<KEY>.
const (
	KeyHost         = "host"
	KeyToken        = "token"
	KeyClientID     = "client_id"
	KeyClientSecret = "client_secret"
	KeyClientToken  = "client_token"
	KeyStage        = "stage"
	KeyIDNamespace  = "id_namespace"
	KeyDebug        = "debug"
	KeyOutput       = "output"
	KeyConfigFile   = "config"
)

const envPrefix = "KG"

// Config holds the settings the CLI needs to build a client.
type Config struct {
	Host         string `json:"host"                    mapstructure:"host"          yaml:"host"`
	Token        string `json:"token,omitempty"         mapstructure:"token"         yaml:"token,omitempty"`
	ClientID     string `json:"client_id,omitempty"     mapstructure:"client_id"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" mapstructure:"client_secret" yaml:"client_secret,omitempty"`
	ClientToken  string `json:"client_token,omitempty"  mapstructure:"client_token"  yaml:"client_token,omitempty"`
	Stage        string `json:"stage"                   mapstructure:"stage"         yaml:"stage"`
	IDNamespace  string `json:"id_namespace"            mapstructure:"id_namespace"  yaml:"id_namespace"`
	Debug        bool   `json:"debug"                   mapstructure:"debug"         yaml:"debug"`
	Output       string `json:"output"                  mapstructure:"output"        yaml:"output"`
}

// Bind registers defaults and environment bindings on v.
func Bind(v *viper.Viper) {
	v.SetDefault(KeyHost, constants.DefaultHost)
	v.SetDefault(KeyStage, string(kg.StageReleased))
	v.SetDefault(KeyIDNamespace, constants.DefaultIDNamespace)
	v.SetDefault(KeyOutput, constants.FormatTable)

	v.SetEnvPrefix(envPrefix)

	for _, key := range []string{
		KeyHost, KeyToken, KeyClientID, KeyClientSecret, KeyClientToken,
		KeyStage, KeyIDNamespace, KeyDebug, KeyOutput, KeyConfigFile,
	} {
		_ = v.BindEnv(key)
	}
}

// Load reads the configuration file, if any, and returns the validated settings.
// An explicitly named file must exist; the default ~/.kg/config.yml is optional.
func Load(v *viper.Viper) (*Config, error) {
	Bind(v)

	err := readFile(v)
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readFile(v *viper.Viper) error {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)

		err := v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", file, err)
		}

		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no default file
	}

	v.AddConfigPath(filepath.Join(home, ".kg"))
	v.SetConfigName("config")
	v.SetConfigType("yml")

	err = v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config file: %w", err)
	}

	return nil
}

// Validate checks that the settings are consistent. A missing client secret is
// reported by ClientConfig so callers can prompt for it first.
func (c *Config) Validate() error {
	if c.Host == "" {
		return constants.ErrHostRequired
	}

	_, err := kg.ParseStage(c.Stage)
	if err != nil {
		return fmt.Errorf("stage %q: %w", c.Stage, err)
	}

	switch c.Output {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, c.Output)
	}

	return nil
}

// HasCredentials reports whether any way to obtain a user token is configured.
func (c *Config) HasCredentials() bool {
	return c.Token != "" || c.ClientID != ""
}

// ClientConfig builds the library configuration.
//
// A token authenticates the user. Client credentials then authenticate the
// service account the user acts through; without a token they authenticate
// the service account as the user. A client token takes precedence over
// client credentials for the Client-Authorization header.
func (c *Config) ClientConfig(logger kg.Logger) (*kg.Config, error) {
	if !c.HasCredentials() {
		return nil, constants.ErrNoCredentials
	}

	if c.ClientID != "" && c.ClientSecret == "" && c.ClientToken == "" {
		return nil, constants.ErrClientSecretRequired
	}

	stage, err := kg.ParseStage(c.Stage)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", c.Stage, err)
	}

	cfg := &kg.Config{
		Host:        c.Host,
		IDNamespace: c.IDNamespace,
		Stage:       stage,
		Debug:       c.Debug,
		Logger:      logger,
	}

	var providerOpts []kgclient.ProviderOption
	if logger != nil {
		providerOpts = append(providerOpts, kgclient.WithProviderLogger(logger))
	}

	switch {
	case c.Token != "":
		cfg.TokenProvider = kgclient.StaticToken(c.Token)
		if c.ClientID != "" && c.ClientToken == "" {
			kgclient.WithClientCredentials(cfg, c.ClientID, c.ClientSecret, providerOpts...)
		}
	default:
		cfg.TokenProvider = kgclient.ClientCredentials(c.ClientID, c.ClientSecret, providerOpts...)
	}

	if c.ClientToken != "" {
		cfg.ClientTokenProvider = kgclient.StaticToken(c.ClientToken)
	}

	return cfg, nil
}

// Masked returns a copy safe for display.
func (c *Config) Masked() Config {
	masked := *c

	for _, secret := range []*string{&masked.Token, &masked.ClientSecret, &masked.ClientToken} {
		if *secret != "" {
			*secret = constants.MaskedSecret
		}
	}

	return masked
}
