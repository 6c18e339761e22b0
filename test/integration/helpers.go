//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
	"github.com/fivetwenty-io/kg-client/pkg/kgclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Host         string
	Token        string
	ClientID     string
	ClientSecret string
	// WriteSpace is a space the credentials may write to. Write tests are
	// skipped without it.
	WriteSpace string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	host := os.Getenv("KG_HOST")
	if host == "" {
		host = "core.kg.ebrains.eu"
	}

	return &TestConfig{
		Host:         host,
		Token:        os.Getenv("KG_TOKEN"),
		ClientID:     os.Getenv("KG_CLIENT_ID"),
		ClientSecret: os.Getenv("KG_CLIENT_SECRET"),
		WriteSpace:   os.Getenv("KG_TEST_SPACE"),
		Verbose:      os.Getenv("KG_DEBUG") == "true",
	}
}

// SkipIfMissingConfig skips test if no credentials are configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" && config.ClientID == "" {
		t.Skip("KG_TOKEN or KG_CLIENT_ID not set, skipping integration test")
	}
}

// SkipIfReadOnly skips test if no writable space is configured
func (config *TestConfig) SkipIfReadOnly(t *testing.T) {
	t.Helper()

	if config.WriteSpace == "" {
		t.Skip("KG_TEST_SPACE not set, skipping write test")
	}
}

// NewClient builds a client from the configured credentials
func (config *TestConfig) NewClient(t *testing.T, stage kg.Stage) kg.Client {
	t.Helper()

	cfg := &kg.Config{Host: config.Host, Stage: stage}
	if config.Verbose {
		cfg.Logger = testLogger{t: t}
		cfg.Debug = true
	}

	switch {
	case config.Token != "" && config.ClientID != "":
		cfg.TokenProvider = kgclient.StaticToken(config.Token)
		kgclient.WithClientCredentials(cfg, config.ClientID, config.ClientSecret)
	case config.Token != "":
		cfg.TokenProvider = kgclient.StaticToken(config.Token)
	default:
		cfg.TokenProvider = kgclient.ClientCredentials(config.ClientID, config.ClientSecret)
	}

	client, err := kgclient.New(context.Background(), cfg)
	require.NoError(t, err)

	return client
}

// NewInstanceID returns a fresh identifier for instances created by a test
func NewInstanceID() string {
	return uuid.NewString()
}

// GenerateTestName generates a unique test name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// WaitForCondition waits for a condition to be true with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}

		time.Sleep(500 * time.Millisecond)
	}

	t.Fatalf("Timeout waiting for condition: %s", message)
}

// testLogger routes client logging into the test log
type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, fields map[string]interface{}) { l.t.Logf("DEBUG %s %v", msg, fields) }
func (l testLogger) Info(msg string, fields map[string]interface{})  { l.t.Logf("INFO %s %v", msg, fields) }
func (l testLogger) Warn(msg string, fields map[string]interface{})  { l.t.Logf("WARN %s %v", msg, fields) }
func (l testLogger) Error(msg string, fields map[string]interface{}) { l.t.Logf("ERROR %s %v", msg, fields) }
