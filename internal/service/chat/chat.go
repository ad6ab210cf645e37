package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lovefest/lovefest_backend/internal/event"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a snapshot of one conversation.
type Session struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
	Typing   bool      `json:"typing"`
}

// Generator produces a reply for a full prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Unconfigured answers every prompt with a fixed notice. Used when no
// provider key is set.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string) (string, error) {
	return NotConfiguredReply, nil
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context) Session
	Get(ctx context.Context, id string) (Session, error)
	// Send appends the user message and the bot's reply. Blank text is
	// ignored and the unchanged session is returned.
	Send(ctx context.Context, id, text string) (Session, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type session struct {
	mu       sync.Mutex
	id       string
	messages []Message
	pending  int
}

func (s *session) snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Session{ID: s.id, Messages: msgs, Typing: s.pending > 0}
}

type chatService struct {
	gen      Generator
	system   string
	greeting string
	apology  string
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

type Option func(*chatService)

func WithClock(now func() time.Time) Option {
	return func(s *chatService) { s.now = now }
}

// New builds the chat service. A nil generator behaves as Unconfigured.
func New(gen Generator, botName string, details event.Details, opts ...Option) Service {
	if gen == nil {
		gen = Unconfigured{}
	}
	if botName == "" {
		botName = "LoveBot"
	}
	s := &chatService{
		gen:      gen,
		system:   SystemPrompt(botName, details),
		greeting: greeting(botName, details),
		apology:  apology(details),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *chatService) message(sender Sender, text string) Message {
	return Message{ID: uuid.NewString(), Text: text, Sender: sender, Timestamp: s.now()}
}

func (s *chatService) Create(_ context.Context) Session {
	sess := &session{id: uuid.NewString()}
	sess.messages = append(sess.messages, s.message(SenderBot, s.greeting))

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.snapshot()
}

func (s *chatService) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *chatService) Get(_ context.Context, id string) (Session, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return sess.snapshot(), nil
}

func (s *chatService) Send(ctx context.Context, id, text string) (Session, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(text) == "" {
		return sess.snapshot(), nil
	}

	sess.mu.Lock()
	sess.messages = append(sess.messages, s.message(SenderUser, text))
	sess.pending++
	sess.mu.Unlock()

	reply := s.reply(ctx, text)

	sess.mu.Lock()
	sess.messages = append(sess.messages, s.message(SenderBot, reply))
	sess.pending--
	sess.mu.Unlock()

	return sess.snapshot(), nil
}

func (s *chatService) reply(ctx context.Context, text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("chat generator panicked", "panic", r)
			out = FallbackReply
		}
	}()

	resp, err := s.gen.Generate(ctx, composePrompt(s.system, text))
	if err != nil {
		slog.Warn("chat generate failed", "err", err)
		return s.apology
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return s.apology
	}
	return resp
}
