package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	require.Equal(t, "simulated", cfg.Provider)
	require.Equal(t, "http://localhost:8081/mahjong.ai.v1.MahjongAIService/AskMahjongAI", cfg.EndpointURL)
	require.Equal(t, 2000, cfg.MaxTokens)
	require.Equal(t, 0.7, cfg.Temperature)
	require.Equal(t, time.Second, cfg.GetSimulatedDelay())
	require.Equal(t, ".response", cfg.ReplyQuery)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "remote with defaults",
			modify:  func(c *Config) { c.Provider = "remote" },
			wantErr: false,
		},
		{
			name:    "unknown provider",
			modify:  func(c *Config) { c.Provider = "openai" },
			wantErr: true,
		},
		{
			name:    "zero max tokens",
			modify:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: true,
		},
		{
			name:    "temperature too high",
			modify:  func(c *Config) { c.Temperature = 2.5 },
			wantErr: true,
		},
		{
			name:    "negative temperature",
			modify:  func(c *Config) { c.Temperature = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative delay",
			modify:  func(c *Config) { c.SimulatedDelayMs = -1 },
			wantErr: true,
		},
		{
			name:    "zero delay",
			modify:  func(c *Config) { c.SimulatedDelayMs = 0 },
			wantErr: false,
		},
		{
			name: "remote without endpoint",
			modify: func(c *Config) {
				c.Provider = "remote"
				c.EndpointURL = ""
			},
			wantErr: true,
		},
		{
			name: "remote with relative endpoint",
			modify: func(c *Config) {
				c.Provider = "remote"
				c.EndpointURL = "/AskMahjongAI"
			},
			wantErr: true,
		},
		{
			name: "remote with broken reply query",
			modify: func(c *Config) {
				c.Provider = "remote"
				c.ReplyQuery = ".response["
			},
			wantErr: true,
		},
		{
			name: "remote with error query disabled",
			modify: func(c *Config) {
				c.Provider = "remote"
				c.ErrorQuery = ""
			},
			wantErr: false,
		},
		{
			name: "simulated ignores broken reply query",
			modify: func(c *Config) {
				c.ReplyQuery = ".response["
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("MAHJONG_TEST_TOKEN", "tok-123")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "literal", input: "plain", want: "plain"},
		{name: "dollar form", input: "$MAHJONG_TEST_TOKEN", want: "tok-123"},
		{name: "brace form", input: "${MAHJONG_TEST_TOKEN}", want: "tok-123"},
		{name: "unset variable", input: "$MAHJONG_TEST_UNSET", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnvVar(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGetEndpointToken(t *testing.T) {
	t.Setenv("MAHJONG_AI_TOKEN", "from-env")

	cfg := NewDefaultConfig()
	require.Equal(t, "from-env", cfg.GetEndpointToken())

	cfg.EndpointToken = "literal"
	require.Equal(t, "literal", cfg.GetEndpointToken())
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	defaults := NewDefaultConfig()
	viper.Set("provider", " Remote ")
	viper.Set("endpoint_url", "http://ai.example.com/ask")
	viper.Set("max_tokens", 500)
	viper.Set("temperature", 1.2)
	viper.Set("simulated_delay_ms", 10)
	viper.Set("reply_query", defaults.ReplyQuery)
	viper.Set("error_query", defaults.ErrorQuery)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "remote", cfg.Provider)
	require.Equal(t, "http://ai.example.com/ask", cfg.GetEndpointURL())
	require.Equal(t, 500, cfg.GetMaxTokens())
	require.Equal(t, 1.2, cfg.GetTemperature())
	require.Equal(t, 10*time.Millisecond, cfg.GetSimulatedDelay())
}

func TestLoadConfig_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("provider", "simulated")
	viper.Set("max_tokens", 0)
	viper.Set("temperature", 0.7)

	_, err := LoadConfig()
	require.Error(t, err)
}
