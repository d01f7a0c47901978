package core

import "time"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventHistory delivers recent message history to a joining client.
	EventHistory EventKind = iota
	// EventSystemNotice announces a participant entering or leaving.
	EventSystemNotice
	// EventChatMessage delivers a chat message to all participants.
	EventChatMessage
	// EventError notifies a client about a rejected operation.
	EventError
)

// Message is the domain model for a chat message.
type Message struct {
	ID        int64
	UserID    int64
	User      string
	Text      string
	CreatedAt time.Time
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Notice   string    // for EventSystemNotice
	Message  Message   // for EventChatMessage
	Messages []Message // for EventHistory
	Error    *CoreError
}
