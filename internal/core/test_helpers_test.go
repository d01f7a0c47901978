package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/papochat/papo-server/internal/store"
)

// fakeStore is an in-memory store.Store with switchable failure modes.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]*store.User
	usersByID   map[int64]*store.User
	messages    []*store.Message
	nextUserID  int64
	nextMsgID   int64
	failUpsert  bool
	failAppend  bool
	failHistory bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*store.User),
		usersByID: make(map[int64]*store.User),
	}
}

func (f *fakeStore) UpsertUser(_ context.Context, username string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert {
		return nil, fmt.Errorf("upsert user: store unavailable")
	}
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	f.nextUserID++
	user := &store.User{ID: f.nextUserID, Username: username, CreatedAt: time.Now()}
	f.users[username] = user
	f.usersByID[user.ID] = user
	return user, nil
}

func (f *fakeStore) AppendMessage(_ context.Context, text string, userID int64) (*store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend {
		return nil, fmt.Errorf("insert message: store unavailable")
	}
	user, ok := f.usersByID[userID]
	if !ok {
		return nil, fmt.Errorf("insert message: unknown author %d", userID)
	}
	f.nextMsgID++
	msg := &store.Message{
		ID:        f.nextMsgID,
		Text:      text,
		UserID:    userID,
		Username:  user.Username,
		CreatedAt: time.Now(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeStore) RecentMessages(_ context.Context, limit int) ([]*store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failHistory {
		return nil, fmt.Errorf("query messages: store unavailable")
	}
	msgs := f.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*store.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) setFailures(upsert, append, history bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUpsert = upsert
	f.failAppend = append
	f.failHistory = history
}

func (f *fakeStore) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func startTestHub(t *testing.T, st store.Store) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(st, nil, 0)
	go hub.Run(ctx)
	return hub
}

// nextEvent returns the next event from ch, failing on timeout.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

// mustEvent consumes events from ch until one of the given kind shows up.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatal("event channel closed")
			}
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
		}
	}
}

// expectNoEvent asserts that ch stays quiet for a short window.
func expectNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(200 * time.Millisecond):
	}
}
