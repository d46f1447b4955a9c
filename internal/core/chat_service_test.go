package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualPacer is a deterministic Pacer: time only moves when the test says
// so, and artificial delays are recorded instead of slept.
type manualPacer struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newManualPacer() *manualPacer {
	return &manualPacer{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (p *manualPacer) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

func (p *manualPacer) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slept = append(p.slept, d)
	p.now = p.now.Add(d)
}

func (p *manualPacer) advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = p.now.Add(d)
}

func (p *manualPacer) sleeps() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.slept...)
}

type scriptedCompleter struct {
	fn func(ctx context.Context, query string, history []Message) (string, error)
}

func (c scriptedCompleter) Complete(ctx context.Context, query string, history []Message) (string, error) {
	return c.fn(ctx, query, history)
}

func newTestChatService(fn func(ctx context.Context, query string, history []Message) (string, error), pacing PacingConfig) (*ChatService, *manualPacer) {
	pacer := newManualPacer()
	svc := NewChatService(scriptedCompleter{fn: fn}, pacing).WithPacer(pacer)
	return svc, pacer
}

func TestCreateConversation_SeedAndSuggestions(t *testing.T) {
	svc, _ := newTestChatService(nil, PacingConfig{})

	conv := svc.CreateConversation()
	require.Len(t, conv.Messages, 1)
	require.EqualValues(t, 1, conv.Messages[0].ID)
	require.False(t, conv.Messages[0].FromUser)
	require.Contains(t, conv.Messages[0].Text, "How can I help you")
	require.Equal(t, SuggestedQuestions(), conv.Suggestions)
	require.False(t, conv.Pending)
}

func TestSubmit_EmptyTextIsNoOp(t *testing.T) {
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		t.Fatal("completer must not be called for empty input")
		return "", nil
	}, PacingConfig{})
	conv := svc.CreateConversation()

	_, err := svc.Submit(context.Background(), conv.ID, "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)

	view, err := svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 1)
}

func TestSubmit_Success(t *testing.T) {
	var gotQuery string
	var gotHistory []Message
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		gotQuery = query
		gotHistory = history
		return "Happy to help with valuations!", nil
	}, PacingConfig{})
	conv := svc.CreateConversation()

	reply, err := svc.Submit(context.Background(), conv.ID, "  How do valuations work?  ")
	require.NoError(t, err)
	require.Equal(t, "Happy to help with valuations!", reply.Text)
	require.False(t, reply.FromUser)

	require.Equal(t, "How do valuations work?", gotQuery)
	// The history handed to the completer is the transcript before this
	// submission: just the seeded greeting.
	require.Len(t, gotHistory, 1)

	view, err := svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	require.EqualValues(t, 2, view.Messages[1].ID)
	require.True(t, view.Messages[1].FromUser)
	require.Equal(t, "How do valuations work?", view.Messages[1].Text)
	require.EqualValues(t, 3, view.Messages[2].ID)
	require.Empty(t, view.Suggestions, "suggestions are cleared on first submission")
	require.False(t, view.Pending)
}

func TestSubmit_RejectedWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		close(started)
		<-release
		return "done", nil
	}, PacingConfig{})
	conv := svc.CreateConversation()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), conv.ID, "first question")
		firstDone <- err
	}()
	<-started

	view, err := svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.True(t, view.Pending)
	require.Len(t, view.Messages, 2)

	_, err = svc.Submit(context.Background(), conv.ID, "second question")
	require.ErrorIs(t, err, ErrConversationBusy)

	view, err = svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 2, "rejected submission must not touch the transcript")

	close(release)
	require.NoError(t, <-firstDone)

	view, err = svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	require.False(t, view.Pending, "conversation returns to idle after the in-flight request resolves")
}

func TestSubmit_RemoteUnavailableUsesCannedFallback(t *testing.T) {
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		return "", &RemoteError{Kind: KindUnavailable, Err: errors.New("network down")}
	}, PacingConfig{})
	conv := svc.CreateConversation()
	require.Len(t, conv.Suggestions, 5)

	reply, err := svc.Submit(context.Background(), conv.ID, "How long does payment take?")
	require.NoError(t, err, "remote failure is handled, never surfaced")
	require.Contains(t, reply.Text, fallbackNoticePrefix)
	require.Contains(t, reply.Text, CannedEntries[4].Answer)

	view, err := svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	require.Empty(t, view.Suggestions)
	require.False(t, view.Pending)
}

func TestSubmit_CredentialErrorShowsSupportNotice(t *testing.T) {
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		return "", &RemoteError{Kind: KindCredential, Err: errors.New("API key rejected")}
	}, PacingConfig{})
	conv := svc.CreateConversation()

	// The notice is fixed and independent of the query, even when the query
	// would have a canned answer.
	reply, err := svc.Submit(context.Background(), conv.ID, "How long does payment take?")
	require.NoError(t, err)
	require.Equal(t, credentialNotice, reply.Text)
	require.NotContains(t, reply.Text, CannedEntries[4].Answer)
}

func TestSubmit_PacingHoldsFastReplies(t *testing.T) {
	pacing := PacingConfig{MinDelay: time.Second, MaxJitter: 2 * time.Second}
	svc, pacer := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		return "instant", nil // resolves without the clock moving
	}, pacing)
	conv := svc.CreateConversation()

	_, err := svc.Submit(context.Background(), conv.ID, "hi there friend")
	require.NoError(t, err)

	sleeps := pacer.sleeps()
	require.Len(t, sleeps, 1)
	require.GreaterOrEqual(t, sleeps[0], time.Second, "reply must not surface before the minimum delay")
	require.Less(t, sleeps[0], 3*time.Second, "delay is bounded by min + jitter")
}

func TestSubmit_NoExtraDelayForSlowReplies(t *testing.T) {
	pacing := PacingConfig{MinDelay: time.Second, MaxJitter: 2 * time.Second}
	var svc *ChatService
	var pacer *manualPacer
	svc, pacer = newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		pacer.advance(1500 * time.Millisecond) // the real call already exceeded the minimum
		return "slow answer", nil
	}, pacing)
	conv := svc.CreateConversation()

	_, err := svc.Submit(context.Background(), conv.ID, "hi there friend")
	require.NoError(t, err)
	require.Empty(t, pacer.sleeps())
}

func TestSelectSuggestion(t *testing.T) {
	pacing := PacingConfig{SuggestionDelay: 300 * time.Millisecond}
	svc, pacer := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		return "", &RemoteError{Kind: KindUnavailable, Err: errors.New("offline")}
	}, pacing)
	conv := svc.CreateConversation()

	reply, err := svc.SelectSuggestion(context.Background(), conv.ID, conv.Suggestions[4])
	require.NoError(t, err)
	require.Contains(t, reply.Text, CannedEntries[4].Answer)

	sleeps := pacer.sleeps()
	require.NotEmpty(t, sleeps)
	require.Equal(t, 300*time.Millisecond, sleeps[0], "the chip is sent after the click delay")
}

func TestOpenConversation_SuggestionsOnlyOnce(t *testing.T) {
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		return "sure", nil
	}, PacingConfig{})
	conv := svc.CreateConversation()
	require.Len(t, conv.Suggestions, 5)

	_, err := svc.Submit(context.Background(), conv.ID, "hello")
	require.NoError(t, err)

	view, err := svc.OpenConversation(conv.ID)
	require.NoError(t, err)
	require.Empty(t, view.Suggestions, "suggestions never come back after the first submission")
}

func TestConversation_UnknownID(t *testing.T) {
	svc, _ := newTestChatService(nil, PacingConfig{})

	_, err := svc.GetConversation("missing")
	require.ErrorIs(t, err, ErrConversationNotFound)

	_, err = svc.Submit(context.Background(), "missing", "hello")
	require.ErrorIs(t, err, ErrConversationNotFound)
}

func TestMessageIDsMonotonic(t *testing.T) {
	svc, _ := newTestChatService(func(ctx context.Context, query string, history []Message) (string, error) {
		return "ok", nil
	}, PacingConfig{})
	conv := svc.CreateConversation()

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(context.Background(), conv.ID, "another question")
		require.NoError(t, err)
	}

	view, err := svc.GetConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 7)
	for i, msg := range view.Messages {
		require.EqualValues(t, i+1, msg.ID, "IDs are unique and increasing in insertion order")
	}
}
