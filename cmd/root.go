/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/longkey1/mahjong-chat/internal/mahjong/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mahjong-chat",
	Short: "Chat with a Mahjong AI assistant from the terminal",
	Long: `mahjong-chat is a command-line chat client for a Mahjong AI assistant.
Replies come either from a built-in simulated provider that picks a random
mahjong tip, or from a remote AI endpoint.
You can configure the tool using a TOML configuration file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mahjong-chat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// userConfigDir returns $HOME/.config/mahjong-chat
func userConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mahjong-chat"), nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env is optional
	_ = godotenv.Load(".env")

	viper.SetEnvPrefix("MAHJONG")
	viper.AutomaticEnv()

	defaultConfig := config.NewDefaultConfig()
	viper.SetDefault("provider", defaultConfig.Provider)
	viper.SetDefault("endpoint_url", defaultConfig.EndpointURL)
	viper.SetDefault("endpoint_token", defaultConfig.EndpointToken)
	viper.SetDefault("max_tokens", defaultConfig.MaxTokens)
	viper.SetDefault("temperature", defaultConfig.Temperature)
	viper.SetDefault("simulated_delay_ms", defaultConfig.SimulatedDelayMs)
	viper.SetDefault("reply_query", defaultConfig.ReplyQuery)
	viper.SetDefault("error_query", defaultConfig.ErrorQuery)
	viper.SetDefault("greeting", defaultConfig.Greeting)
	viper.SetDefault("log_level", defaultConfig.LogLevel)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := userConfigDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  MAHJONG_PROVIDER:", viper.GetString("provider"))
		fmt.Fprintln(os.Stderr, "  MAHJONG_ENDPOINT_URL:", viper.GetString("endpoint_url"))
	}
}

// newLogger builds the console logger on stderr.
// --verbose forces debug level regardless of log_level.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.WarnLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// loadConfig loads the configuration and applies the --provider flag when set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Flags().Lookup("provider") != nil && cmd.Flags().Changed("provider") {
		viper.Set("provider", providerFlag)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
