package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, provider, endpoint_url, endpoint_token, max_tokens, temperature, simulated_delay_ms, reply_query, error_query, greeting, log_level"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  mahjong-chat config                 # Show all configuration
  mahjong-chat config provider        # Show only the provider
  mahjong-chat config endpoint_url    # Show only the remote endpoint URL
  mahjong-chat config endpoint_token  # Show only the endpoint token (masked)`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// If a field is specified, show only that field
		if len(args) > 0 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Println(viper.ConfigFileUsed())
			case "provider":
				fmt.Println(cfg.Provider)
			case "endpoint_url", "endpointurl":
				fmt.Println(cfg.EndpointURL)
			case "endpoint_token", "endpointtoken":
				fmt.Println(maskToken(cfg.GetEndpointToken()))
			case "max_tokens", "maxtokens":
				fmt.Println(cfg.MaxTokens)
			case "temperature":
				fmt.Println(cfg.Temperature)
			case "simulated_delay_ms", "simulateddelayms":
				fmt.Println(cfg.SimulatedDelayMs)
			case "reply_query", "replyquery":
				fmt.Println(cfg.ReplyQuery)
			case "error_query", "errorquery":
				fmt.Println(cfg.ErrorQuery)
			case "greeting":
				fmt.Println(cfg.Greeting)
			case "log_level", "loglevel":
				fmt.Println(cfg.LogLevel)
			default:
				fmt.Fprintf(os.Stderr, "Available fields: %s\n", configFields)
				return fmt.Errorf("unknown field: %s", args[0])
			}
			return nil
		}

		// Display all configuration values
		fmt.Printf("ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("EndpointURL: %s\n", cfg.EndpointURL)
		fmt.Printf("EndpointToken: %s\n", maskToken(cfg.GetEndpointToken()))
		fmt.Printf("MaxTokens: %d\n", cfg.MaxTokens)
		fmt.Printf("Temperature: %v\n", cfg.Temperature)
		fmt.Printf("SimulatedDelayMs: %d\n", cfg.SimulatedDelayMs)
		fmt.Printf("ReplyQuery: %s\n", cfg.ReplyQuery)
		fmt.Printf("ErrorQuery: %s\n", cfg.ErrorQuery)
		fmt.Printf("Greeting: %s\n", cfg.Greeting)
		fmt.Printf("LogLevel: %s\n", cfg.LogLevel)
		return nil
	},
}

// maskToken returns a masked version of the token for security
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
}
