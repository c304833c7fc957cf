package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration view used by the CLI client. It carries
// only what the client runtime needs: where the server is and how long to
// wait for it.
type ClientConfig struct {
	// ServerAddress is the base URL of the vault server
	// (e.g. "http://localhost:8080").
	ServerAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It merges the same sources as [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		ServerAddress:  cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	return clientCfg, clientCfg.validate()
}
