package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func newExportStore(t *testing.T) *Store {
	t.Helper()
	fixed := mustTime(t, "2025-06-01T12:00:00Z")
	store := New(&stubProvider{reply: "ドラを大切に"}, WithClock(func() time.Time { return fixed }))
	require.True(t, store.Submit(context.Background(), "コツは？"))
	store.Wait()
	return store
}

func TestSnapshot(t *testing.T) {
	store := newExportStore(t)

	transcript := store.Snapshot()
	require.Equal(t, store.ID(), transcript.SessionID)
	require.Equal(t, "stub", transcript.Provider)
	require.Equal(t, 3, transcript.MessageCount())

	// the snapshot is a copy
	transcript.Messages[0].Content = "changed"
	require.Equal(t, mahjong.DefaultGreeting, store.Messages()[0].Content)
}

func TestSaveTranscript_JSON(t *testing.T) {
	store := newExportStore(t)
	path := filepath.Join(t.TempDir(), "exports", "chat.json")

	require.NoError(t, SaveTranscript(path, store.Snapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Transcript
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, store.ID(), got.SessionID)
	require.Len(t, got.Messages, 3)
	require.Equal(t, mahjong.SenderUser, got.Messages[1].Sender)
	require.Equal(t, "コツは？", got.Messages[1].Content)
	require.Equal(t, "ドラを大切に", got.Messages[2].Content)
}

func TestSaveTranscript_TOML(t *testing.T) {
	store := newExportStore(t)
	path := filepath.Join(t.TempDir(), "chat.toml")

	require.NoError(t, SaveTranscript(path, store.Snapshot()))

	var got Transcript
	_, err := toml.DecodeFile(path, &got)
	require.NoError(t, err)
	require.Equal(t, store.ID(), got.SessionID)
	require.Len(t, got.Messages, 3)
	require.Equal(t, mahjong.KindReply, got.Messages[2].Kind)
}

func TestSaveTranscript_EmptyPath(t *testing.T) {
	require.Error(t, SaveTranscript("  ", Transcript{}))
}
