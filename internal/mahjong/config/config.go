package config

import (
	"fmt"
	"time"

	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/longkey1/mahjong-chat/internal/remote"
	"github.com/longkey1/mahjong-chat/internal/simulated"
	"github.com/spf13/viper"
)

// Config holds the configuration for the chat client and its reply provider
type Config struct {
	Provider         string  `toml:"provider" mapstructure:"provider"` // "simulated" or "remote"
	EndpointURL      string  `toml:"endpoint_url" mapstructure:"endpoint_url"`
	EndpointToken    string  `toml:"endpoint_token" mapstructure:"endpoint_token"` // Optional bearer token, "$VAR" is expanded
	MaxTokens        int     `toml:"max_tokens" mapstructure:"max_tokens"`
	Temperature      float64 `toml:"temperature" mapstructure:"temperature"`
	SimulatedDelayMs int     `toml:"simulated_delay_ms" mapstructure:"simulated_delay_ms"`
	ReplyQuery       string  `toml:"reply_query" mapstructure:"reply_query"` // jq expression selecting the reply text
	ErrorQuery       string  `toml:"error_query" mapstructure:"error_query"` // jq expression selecting an in-band error, "" disables
	Greeting         string  `toml:"greeting" mapstructure:"greeting"`
	LogLevel         string  `toml:"log_level" mapstructure:"log_level"`
}

// GetEndpointURL returns the remote endpoint URL
func (c *Config) GetEndpointURL() string {
	return c.EndpointURL
}

// GetEndpointToken returns the bearer token, with environment references expanded
func (c *Config) GetEndpointToken() string {
	token, _ := expandEnvVar(c.EndpointToken)
	return token
}

// GetMaxTokens returns max_tokens for the remote request
func (c *Config) GetMaxTokens() int {
	return c.MaxTokens
}

// GetTemperature returns temperature for the remote request
func (c *Config) GetTemperature() float64 {
	return c.Temperature
}

// GetReplyQuery returns the jq expression used to extract the reply
func (c *Config) GetReplyQuery() string {
	return c.ReplyQuery
}

// GetErrorQuery returns the jq expression used to detect in-band errors
func (c *Config) GetErrorQuery() string {
	return c.ErrorQuery
}

// GetSimulatedDelay returns the artificial latency of the simulated provider
func (c *Config) GetSimulatedDelay() time.Duration {
	return time.Duration(c.SimulatedDelayMs) * time.Millisecond
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Provider:         simulated.ProviderName,
		EndpointURL:      remote.DefaultEndpointURL,
		EndpointToken:    "$MAHJONG_AI_TOKEN", // Default to env var
		MaxTokens:        remote.DefaultMaxTokens,
		Temperature:      remote.DefaultTemperature,
		SimulatedDelayMs: int(simulated.DefaultDelay / time.Millisecond),
		ReplyQuery:       remote.DefaultReplyQuery,
		ErrorQuery:       remote.DefaultErrorQuery,
		Greeting:         mahjong.DefaultGreeting,
		LogLevel:         "warn",
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	provider, err := mahjong.ParseProviderName(config.Provider)
	if err != nil {
		return nil, fmt.Errorf("error parsing provider: %w", err)
	}
	config.Provider = provider

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
