package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/longkey1/mahjong-chat/internal/mahjong/config"
	"github.com/longkey1/mahjong-chat/internal/mahjong/session"
	"github.com/longkey1/mahjong-chat/internal/remote"
	"github.com/longkey1/mahjong-chat/internal/simulated"
	"github.com/stretchr/testify/require"
)

// manualClock fires the simulated delay when the test sends on fire.
type manualClock struct {
	fire chan time.Time
}

func (c *manualClock) After(time.Duration) <-chan time.Time {
	return c.fire
}

func TestScenario_SimulatedReply(t *testing.T) {
	clock := &manualClock{fire: make(chan time.Time, 1)}
	provider := simulated.NewProvider(config.NewDefaultConfig(), simulated.WithClock(clock))
	store := session.New(provider)
	defer store.Close()

	msgs := store.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, mahjong.SenderAssistant, msgs[0].Sender)

	require.True(t, store.Submit(context.Background(), "リーチのタイミングは？"))
	require.Equal(t, 2, store.Len())
	require.True(t, store.AwaitingReply())

	clock.fire <- time.Now()
	store.Wait()

	require.Equal(t, 3, store.Len())
	require.False(t, store.AwaitingReply())
	reply := store.Last()
	require.Equal(t, mahjong.SenderAssistant, reply.Sender)
	require.True(t, slices.Contains(simulated.Tips, reply.Content), "unexpected reply %q", reply.Content)
}

func TestScenario_RemoteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	cfg := config.NewDefaultConfig()
	cfg.Provider = remote.ProviderName
	cfg.EndpointURL = endpoint
	cfg.EndpointToken = ""
	require.NoError(t, cfg.Validate())

	provider, err := remote.NewProvider(cfg)
	require.NoError(t, err)
	store := session.New(provider)
	defer store.Close()

	require.True(t, store.Submit(context.Background(), "test"))
	store.Wait()

	require.False(t, store.AwaitingReply())
	require.Equal(t, 3, store.Len())
	last := store.Last()
	require.True(t, last.IsError())
	require.Equal(t, mahjong.FailureText(mahjong.ErrProviderUnavailable), last.Content)
}

func TestScenario_RemoteReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"両面待ちを優先しましょう。"}`))
	}))
	defer server.Close()

	cfg := config.NewDefaultConfig()
	cfg.Provider = remote.ProviderName
	cfg.EndpointURL = server.URL

	provider, err := remote.NewProvider(cfg)
	require.NoError(t, err)
	store := session.New(provider)
	defer store.Close()

	require.True(t, store.Submit(context.Background(), "待ちの選び方は？"))
	store.Wait()

	require.Equal(t, "両面待ちを優先しましょう。", store.Last().Content)
	require.False(t, store.Last().IsError())
}
