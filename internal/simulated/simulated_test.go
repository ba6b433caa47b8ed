package simulated

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type delayConfig time.Duration

func (c delayConfig) GetSimulatedDelay() time.Duration { return time.Duration(c) }

// fakeClock records requested delays and fires only when told to.
type fakeClock struct {
	requested []time.Duration
	fire      chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{fire: make(chan time.Time, 1)}
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.requested = append(c.requested, d)
	return c.fire
}

func TestReply_ReturnsPickedTipAfterDelay(t *testing.T) {
	clock := newFakeClock()
	clock.fire <- time.Now()

	p := NewProvider(delayConfig(time.Second),
		WithClock(clock),
		WithPicker(func(n int) int { return n - 1 }),
	)

	reply, err := p.Reply(context.Background(), "リーチのタイミングは？")
	require.NoError(t, err)
	require.Equal(t, Tips[len(Tips)-1], reply)
	require.Equal(t, []time.Duration{time.Second}, clock.requested)
}

func TestReply_IgnoresPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{name: "question", prompt: "鳴くべき？"},
		{name: "english", prompt: "what is riichi"},
		{name: "empty", prompt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(delayConfig(0), WithPicker(func(int) int { return 2 }))
			reply, err := p.Reply(context.Background(), tt.prompt)
			require.NoError(t, err)
			require.Equal(t, Tips[2], reply)
		})
	}
}

func TestReply_ZeroDelaySkipsClock(t *testing.T) {
	clock := newFakeClock()
	p := NewProvider(delayConfig(0), WithClock(clock))

	_, err := p.Reply(context.Background(), "x")
	require.NoError(t, err)
	require.Empty(t, clock.requested)
}

func TestReply_CancelledDuringDelay(t *testing.T) {
	clock := newFakeClock()
	p := NewProvider(delayConfig(time.Second), WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Reply(ctx, "x")
	require.True(t, errors.Is(err, context.Canceled))
}

func TestReply_DefaultPickerStaysInRange(t *testing.T) {
	p := NewProvider(delayConfig(0))
	valid := make(map[string]bool, len(Tips))
	for _, tip := range Tips {
		valid[tip] = true
	}

	for i := 0; i < 200; i++ {
		reply, err := p.Reply(context.Background(), "x")
		require.NoError(t, err)
		require.True(t, valid[reply], "unexpected reply %q", reply)
	}
}

func TestReply_NoTips(t *testing.T) {
	p := NewProvider(delayConfig(0), WithTips(nil))
	_, err := p.Reply(context.Background(), "x")
	require.Error(t, err)
}

func TestNewProvider_NilConfigUsesDefaultDelay(t *testing.T) {
	p := NewProvider(nil)
	require.Equal(t, DefaultDelay, p.delay)
	require.Equal(t, ProviderName, p.Name())
}
