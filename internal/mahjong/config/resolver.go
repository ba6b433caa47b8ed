package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/longkey1/mahjong-chat/internal/remote"
	"github.com/longkey1/mahjong-chat/internal/simulated"
)

// expandEnvVar expands environment variable references in the given value
// Supports both $VAR and ${VAR} syntax
// Returns the expanded value. If the environment variable is not set, returns empty string.
func expandEnvVar(value string) (string, error) {
	// Check if it's an environment variable reference
	if !strings.HasPrefix(value, "$") {
		return value, nil
	}

	var envVarName string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVarName = value[2 : len(value)-1]
	} else {
		envVarName = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(envVarName), nil
}

// Validate checks the configuration values the providers depend on
func (c *Config) Validate() error {
	switch c.Provider {
	case simulated.ProviderName, remote.ProviderName:
	default:
		return fmt.Errorf("unsupported provider: %s (expected %s or %s)", c.Provider, simulated.ProviderName, remote.ProviderName)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be greater than 0 (got %d)", c.MaxTokens)
	}
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0 (got %v)", c.Temperature)
	}
	if c.SimulatedDelayMs < 0 {
		return fmt.Errorf("simulated_delay_ms cannot be negative (got %d)", c.SimulatedDelayMs)
	}

	if c.Provider == remote.ProviderName {
		if c.EndpointURL == "" {
			return fmt.Errorf("remote endpoint URL is not configured. Set it in config file (endpoint_url) or environment variable (MAHJONG_ENDPOINT_URL)")
		}
		u, err := url.Parse(c.EndpointURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid endpoint_url: %q", c.EndpointURL)
		}
		if _, err := remote.CompileQuery(c.ReplyQuery); err != nil {
			return fmt.Errorf("invalid reply_query: %w", err)
		}
		if strings.TrimSpace(c.ErrorQuery) != "" {
			if _, err := remote.CompileQuery(c.ErrorQuery); err != nil {
				return fmt.Errorf("invalid error_query: %w", err)
			}
		}
	}

	return nil
}
