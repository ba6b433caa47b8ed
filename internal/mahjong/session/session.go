package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/rs/zerolog"
)

// Store holds one conversation: the ordered message list and the
// awaiting-reply flag. It is the single source of truth a view renders from.
// At most one provider call is in flight at a time.
type Store struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time
	provider  mahjong.Provider
	messages  []mahjong.Message
	awaiting  bool
	closed    bool

	greeting string
	now      func() time.Time
	newID    func() string
	onChange func()
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithGreeting replaces the initial assistant message.
func WithGreeting(greeting string) Option {
	return func(s *Store) {
		s.greeting = greeting
	}
}

// WithClock sets the function used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function used to mint message IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithOnChange registers a hook called after every state change.
// The hook runs without the store lock held, so it may read the store.
func WithOnChange(fn func()) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store seeded with the greeting message.
func New(provider mahjong.Provider, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		id:       uuid.New().String(),
		provider: provider,
		greeting: mahjong.DefaultGreeting,
		now:      time.Now,
		newID:    newMessageID,
		logger:   zerolog.Nop(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.createdAt = s.now()
	s.messages = []mahjong.Message{s.newMessage(mahjong.SenderAssistant, mahjong.KindReply, s.greeting)}
	return s
}

// newMessageID returns a time-ordered UUID (v7).
func newMessageID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ID returns the session ID.
func (s *Store) ID() string {
	return s.id
}

// ShortID returns the first 8 characters of the session ID.
func (s *Store) ShortID() string {
	if len(s.id) >= 8 {
		return s.id[:8]
	}
	return s.id
}

// ProviderName returns the name of the provider replies come from.
func (s *Store) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Submit appends a user message with text and asks the provider for a reply.
// It returns false without touching any state when text is blank after
// trimming, when a reply is already pending, or after Close.
// The stored content is text as given; trimming only decides emptiness.
func (s *Store) Submit(ctx context.Context, text string) bool {
	if err := mahjong.ValidateInput(text); err != nil {
		s.logger.Debug().Err(err).Msg("submit rejected")
		return false
	}

	s.mu.Lock()
	if s.awaiting || s.closed {
		awaiting := s.awaiting
		s.mu.Unlock()
		s.logger.Debug().Bool("awaiting", awaiting).Msg("submit rejected while busy")
		return false
	}
	msg := s.newMessage(mahjong.SenderUser, mahjong.KindReply, text)
	s.messages = append(s.messages, msg)
	s.awaiting = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug().
		Str("session_id", s.ShortID()).
		Str("message_id", msg.ID).
		Int("prompt_length", len(text)).
		Msg("user message submitted")
	s.notify()

	go s.request(ctx, text)
	return true
}

// request runs one provider call and settles the pending reply.
func (s *Store) request(ctx context.Context, text string) {
	defer s.wg.Done()

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	reply, err := s.provider.Reply(callCtx, text)
	if err != nil {
		s.FailReply(err)
		return
	}
	s.ResolveReply(reply)
}

// ResolveReply appends an assistant message with content and clears the
// awaiting-reply flag.
func (s *Store) ResolveReply(content string) {
	if !s.settle(mahjong.KindReply, content) {
		return
	}
	s.logger.Debug().
		Str("session_id", s.ShortID()).
		Int("reply_length", len(content)).
		Msg("reply resolved")
}

// FailReply appends an assistant message describing err and clears the
// awaiting-reply flag.
func (s *Store) FailReply(err error) {
	if !s.settle(mahjong.KindError, mahjong.FailureText(err)) {
		return
	}
	s.logger.Warn().
		Err(err).
		Str("session_id", s.ShortID()).
		Str("provider", s.ProviderName()).
		Msg("reply failed")
}

// settle appends the assistant message and clears the flag. After Close the
// message is dropped, but the flag is still cleared.
func (s *Store) settle(kind mahjong.Kind, content string) bool {
	s.mu.Lock()
	s.awaiting = false
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug().Str("session_id", s.ShortID()).Msg("reply dropped after close")
		return false
	}
	s.messages = append(s.messages, s.newMessage(mahjong.SenderAssistant, kind, content))
	s.mu.Unlock()
	s.notify()
	return true
}

// Reset clears the conversation back to the greeting message.
// It returns false while a reply is pending.
func (s *Store) Reset() bool {
	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return false
	}
	s.messages = []mahjong.Message{s.newMessage(mahjong.SenderAssistant, mahjong.KindReply, s.greeting)}
	s.mu.Unlock()

	s.logger.Debug().Str("session_id", s.ShortID()).Msg("session reset")
	s.notify()
	return true
}

// Messages returns a copy of the conversation in insertion order.
func (s *Store) Messages() []mahjong.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]mahjong.Message, len(s.messages))
	copy(result, s.messages)
	return result
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Last returns the most recent message.
func (s *Store) Last() mahjong.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[len(s.messages)-1]
}

// AwaitingReply reports whether a reply is pending.
func (s *Store) AwaitingReply() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Wait blocks until no reply is pending.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close cancels any in-flight provider call and waits for it to return.
// A reply that arrives after Close is discarded. Submit is rejected afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Store) newMessage(sender mahjong.Sender, kind mahjong.Kind, content string) mahjong.Message {
	return mahjong.Message{
		ID:        s.newID(),
		Content:   content,
		Sender:    sender,
		Kind:      kind,
		Timestamp: s.now(),
	}
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
