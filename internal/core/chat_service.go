package core

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"
)

const greetingText = "Hi there! How can I help you today? You can ask me about selling licenses, getting valuations, or the payment process."

const fallbackNoticePrefix = "Note: I'm currently using pre-written responses due to a technical issue. Here's what I know about your question:\n\n"

const credentialNotice = "I'm having trouble with my AI capabilities due to an API key issue. Please contact support to resolve this. " +
	"In the meantime, I can still help with basic questions about SoftShell."

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationBusy     = errors.New("a response is already being generated for this conversation")
	ErrEmptyMessage         = errors.New("message text cannot be empty")
)

// Conversation FSM states and triggers. A conversation is Idle between
// interactions and Pending while exactly one completion request is in flight.
var (
	stateIdle    stateless.State = "Idle"
	statePending stateless.State = "Pending"

	triggerSubmit  stateless.Trigger = "Submit"
	triggerResolve stateless.Trigger = "Resolve"
)

// Message is a single transcript entry. Immutable once created; IDs are
// unique and increasing within a conversation and double as display order.
type Message struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	FromUser bool      `json:"from_user"`
	SentAt   time.Time `json:"sent_at"`
}

// Conversation owns one widget session: the transcript, the suggestion chips
// and the Idle/Pending request lifecycle. It lives in memory only and is
// discarded with the widget instance.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	messages    []Message
	suggestions []string
	suggested   bool // suggestions were shown once already
	nextID      int64
	fsm         *stateless.StateMachine
}

// ConversationView is an immutable snapshot of a conversation, safe to
// marshal while the conversation keeps moving.
type ConversationView struct {
	ID          string    `json:"id"`
	Messages    []Message `json:"messages"`
	Suggestions []string  `json:"suggestions"`
	Pending     bool      `json:"pending"`
	CreatedAt   time.Time `json:"created_at"`
}

// Completer resolves a user query to a completion, given the transcript so
// far. Implemented by LLMService; easy to script in tests.
type Completer interface {
	Complete(ctx context.Context, query string, history []Message) (string, error)
}

// Pacer abstracts time measurement and artificial delay so the perceived
// latency pacing can run instantly and deterministically in tests.
type Pacer interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

type wallClockPacer struct{}

func (wallClockPacer) Now() time.Time { return time.Now() }

func (wallClockPacer) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// PacingConfig controls the minimum perceived response latency. An
// instantaneous reply reads as canned even when it is not, so responses are
// held back to at least MinDelay plus a random jitter up to MaxJitter.
type PacingConfig struct {
	MinDelay        time.Duration
	MaxJitter       time.Duration
	SuggestionDelay time.Duration
}

type ChatService struct {
	completer Completer
	pacer     Pacer
	pacing    PacingConfig

	mu            sync.Mutex
	conversations map[string]*Conversation
}

func NewChatService(completer Completer, pacing PacingConfig) *ChatService {
	return &ChatService{
		completer:     completer,
		pacer:         wallClockPacer{},
		pacing:        pacing,
		conversations: make(map[string]*Conversation),
	}
}

// WithPacer replaces the wall-clock pacer. Intended for tests.
func (s *ChatService) WithPacer(p Pacer) *ChatService {
	s.pacer = p
	return s
}

func newConversationFSM() *stateless.StateMachine {
	fsm := stateless.NewStateMachine(stateIdle)
	fsm.Configure(stateIdle).Permit(triggerSubmit, statePending)
	fsm.Configure(statePending).Permit(triggerResolve, stateIdle)
	return fsm
}

// CreateConversation seeds a new conversation with the greeting message and
// opens it, so the first response carries the suggestion chips.
func (s *ChatService) CreateConversation() *ConversationView {
	conv := &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		nextID:    1,
		fsm:       newConversationFSM(),
	}
	conv.messages = []Message{{
		ID:       1,
		Text:     greetingText,
		FromUser: false,
		SentAt:   time.Now(),
	}}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	return s.open(conv)
}

func (s *ChatService) lookup(conversationID string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// OpenConversation marks the widget as opened. On the first open of a fresh
// conversation the suggestion chips are populated from the canned question
// list; they stay empty on later opens or after the user has written.
func (s *ChatService) OpenConversation(conversationID string) (*ConversationView, error) {
	conv, err := s.lookup(conversationID)
	if err != nil {
		return nil, err
	}
	return s.open(conv), nil
}

func (s *ChatService) open(conv *Conversation) *ConversationView {
	conv.mu.Lock()
	defer conv.mu.Unlock()
	if len(conv.messages) == 1 && !conv.suggested {
		conv.suggestions = SuggestedQuestions()
		conv.suggested = true
	}
	return conv.viewLocked()
}

// GetConversation returns a snapshot of the conversation.
func (s *ChatService) GetConversation(conversationID string) (*ConversationView, error) {
	conv, err := s.lookup(conversationID)
	if err != nil {
		return nil, err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.viewLocked(), nil
}

// Submit resolves one user message to one assistant message. While a request
// is in flight the conversation is Pending and further submissions are
// rejected, so at most one completion call runs per conversation. The
// conversation always returns to Idle, whatever the outcome.
func (s *ChatService) Submit(ctx context.Context, conversationID, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.lookup(conversationID)
	if err != nil {
		return nil, err
	}

	conv.mu.Lock()
	if err := conv.fsm.Fire(triggerSubmit); err != nil {
		conv.mu.Unlock()
		return nil, ErrConversationBusy
	}
	history := make([]Message, len(conv.messages))
	copy(history, conv.messages)
	conv.appendLocked(text, true)
	conv.suggestions = nil
	conv.mu.Unlock()

	defer func() {
		conv.mu.Lock()
		if err := conv.fsm.Fire(triggerResolve); err != nil {
			log.Printf("Conversation %s failed to return to idle: %v", conv.ID, err)
		}
		conv.mu.Unlock()
	}()

	start := s.pacer.Now()
	replyText, err := s.completer.Complete(ctx, text, history)
	if err != nil {
		log.Printf("Completion failed for conversation %s: %v", conv.ID, err)
		if IsCredentialError(err) {
			replyText = credentialNotice
		} else {
			replyText = fallbackNoticePrefix + FallbackAnswer(text)
		}
	}

	s.paceReply(ctx, start)

	conv.mu.Lock()
	reply := conv.appendLocked(replyText, false)
	conv.mu.Unlock()
	return &reply, nil
}

// SelectSuggestion submits a suggestion chip after a short delay, emulating
// the user clicking the chip and then sending.
func (s *ChatService) SelectSuggestion(ctx context.Context, conversationID, question string) (*Message, error) {
	s.pacer.Sleep(ctx, s.pacing.SuggestionDelay)
	return s.Submit(ctx, conversationID, question)
}

// paceReply holds the response back so it is never surfaced before MinDelay
// has elapsed since submission. A call that already took longer is not
// delayed further.
func (s *ChatService) paceReply(ctx context.Context, start time.Time) {
	if s.pacing.MinDelay <= 0 {
		return
	}
	elapsed := s.pacer.Now().Sub(start)
	if elapsed >= s.pacing.MinDelay {
		return
	}
	var jitter time.Duration
	if s.pacing.MaxJitter > 0 {
		jitter = time.Duration(rand.Int63n(int64(s.pacing.MaxJitter)))
	}
	s.pacer.Sleep(ctx, s.pacing.MinDelay+jitter-elapsed)
}

func (c *Conversation) appendLocked(text string, fromUser bool) Message {
	c.nextID++
	msg := Message{
		ID:       c.nextID,
		Text:     text,
		FromUser: fromUser,
		SentAt:   time.Now(),
	}
	c.messages = append(c.messages, msg)
	return msg
}

func (c *Conversation) viewLocked() *ConversationView {
	view := &ConversationView{
		ID:          c.ID,
		Messages:    make([]Message, len(c.messages)),
		Suggestions: append([]string(nil), c.suggestions...),
		Pending:     c.pendingLocked(),
		CreatedAt:   c.CreatedAt,
	}
	copy(view.Messages, c.messages)
	return view
}

func (c *Conversation) pendingLocked() bool {
	return c.fsm.MustState() == statePending
}
