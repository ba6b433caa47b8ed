package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/mahjong-chat/internal/mahjong"
)

// Transcript is a read-only snapshot of a conversation, written by /export.
// Transcripts are never loaded back into a Store.
type Transcript struct {
	SessionID  string            `json:"session_id" toml:"session_id"`
	Provider   string            `json:"provider" toml:"provider"`
	CreatedAt  time.Time         `json:"created_at" toml:"created_at"`
	ExportedAt time.Time         `json:"exported_at" toml:"exported_at"`
	Messages   []mahjong.Message `json:"messages" toml:"messages"`
}

// Snapshot returns the current conversation as a Transcript.
func (s *Store) Snapshot() Transcript {
	return Transcript{
		SessionID:  s.id,
		Provider:   s.ProviderName(),
		CreatedAt:  s.createdAt,
		ExportedAt: s.now(),
		Messages:   s.Messages(),
	}
}

// MessageCount returns the number of messages in the transcript
func (t Transcript) MessageCount() int {
	return len(t.Messages)
}

// SaveTranscript writes the transcript to path.
// The format follows the extension: ".toml" writes TOML, anything else JSON.
func SaveTranscript(path string, t Transcript) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	// Create parent directory if it doesn't exist
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(t); err != nil {
			return fmt.Errorf("failed to encode transcript: %w", err)
		}
		data = []byte(buf.String())
	default:
		encoded, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize transcript: %w", err)
		}
		data = encoded
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}

	return nil
}
