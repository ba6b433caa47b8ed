package cmd

import (
	"fmt"

	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/longkey1/mahjong-chat/internal/mahjong/config"
	"github.com/longkey1/mahjong-chat/internal/remote"
	"github.com/longkey1/mahjong-chat/internal/simulated"
	"github.com/rs/zerolog"
)

// newProvider creates a new provider instance based on the configuration
func newProvider(cfg *config.Config, logger zerolog.Logger) (mahjong.Provider, error) {
	switch cfg.Provider {
	case simulated.ProviderName:
		return simulated.NewProvider(cfg, simulated.WithLogger(logger)), nil
	case remote.ProviderName:
		provider, err := remote.NewProvider(cfg, remote.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
