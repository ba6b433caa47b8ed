package simulated

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

const (
	ProviderName = "simulated"
	DefaultDelay = time.Second
)

// Clock schedules the artificial latency.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Config defines the configuration interface for the simulated provider
type Config interface {
	GetSimulatedDelay() time.Duration
}

// Provider implements the mahjong.Provider interface with canned tips.
// The prompt is ignored.
type Provider struct {
	delay  time.Duration
	tips   []string
	pick   func(n int) int
	clock  Clock
	logger zerolog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithPicker sets the function choosing a tip index in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(p *Provider) {
		p.pick = pick
	}
}

// WithClock sets the clock used for the artificial delay.
func WithClock(clock Clock) Option {
	return func(p *Provider) {
		p.clock = clock
	}
}

// WithTips replaces the candidate list.
func WithTips(tips []string) Option {
	return func(p *Provider) {
		p.tips = tips
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a new simulated provider instance
func NewProvider(config Config, opts ...Option) *Provider {
	delay := DefaultDelay
	if config != nil {
		delay = config.GetSimulatedDelay()
	}
	p := &Provider{
		delay:  delay,
		tips:   Tips,
		pick:   rand.Intn,
		clock:  realClock{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements mahjong.Provider.
func (p *Provider) Name() string {
	return ProviderName
}

// Reply waits for the configured delay and returns a random tip.
// It returns ctx.Err() if ctx is done first.
func (p *Provider) Reply(ctx context.Context, _ string) (string, error) {
	if p.delay > 0 {
		select {
		case <-p.clock.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if len(p.tips) == 0 {
		return "", errors.New("simulated provider has no tips")
	}
	i := p.pick(len(p.tips))
	p.logger.Debug().Int("tip", i).Dur("delay", p.delay).Msg("simulated reply")
	return p.tips[i], nil
}
