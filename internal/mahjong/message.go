package mahjong

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Kind distinguishes ordinary replies from failure notices.
type Kind string

const (
	KindReply Kind = "reply"
	KindError Kind = "error"
)

// Message represents a single message in a conversation
type Message struct {
	ID        string    `json:"id" toml:"id"`
	Content   string    `json:"content" toml:"content"` // Opaque to the session; may carry markdown
	Sender    Sender    `json:"sender" toml:"sender"`
	Kind      Kind      `json:"kind" toml:"kind"`
	Timestamp time.Time `json:"timestamp" toml:"timestamp"` // Informational only, never used for ordering
}

// IsError reports whether the message is a failure notice.
func (m Message) IsError() bool {
	return m.Kind == KindError
}
