// Package mahjong provides the core abstractions for the Mahjong AI chat client.
// This package defines the Provider interface that every reply source
// (simulated, remote) must implement, and the Message type the session store keeps.
package mahjong

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for reply providers.
// Exactly one reply (or one error) is produced per call.
//
// Example usage:
//
//	provider := simulated.NewProvider(cfg)
//	reply, err := provider.Reply(ctx, "リーチのタイミングは？")
type Provider interface {
	// Name returns the configuration name of the provider ("simulated", "remote").
	Name() string

	// Reply produces the assistant's reply for the given user text.
	Reply(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

// Name implements Provider.
func (f ProviderFunc) Name() string { return "func" }

// Reply implements Provider.
func (f ProviderFunc) Reply(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// DefaultGreeting is the assistant message every new session starts with.
const DefaultGreeting = "こんにちは！麻雀AIエージェントです。麻雀に関する質問や戦術について何でもお聞きください。"

// ValidateInput checks that text is non-empty after trimming whitespace.
// The text itself is never modified.
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// ParseProviderName normalizes a provider name from configuration or flags.
//
// Example:
//
//	name, err := ParseProviderName(" Remote ")
//	// name = "remote"
func ParseProviderName(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", fmt.Errorf("provider cannot be empty")
	}
	return normalized, nil
}
