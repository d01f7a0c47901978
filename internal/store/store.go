package store

import (
	"context"
	"time"
)

// User represents a chat participant known to the store.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Message represents a persisted chat message. Username carries the
// author's name resolved at read time.
type Message struct {
	ID        int64
	Text      string
	UserID    int64
	Username  string
	CreatedAt time.Time
}

// DefaultHistoryLimit bounds history replay when no limit is configured.
const DefaultHistoryLimit = 50

// UserStore handles user persistence.
type UserStore interface {
	// UpsertUser returns the user with the given username, creating it
	// on first use. Repeated calls with the same username return the
	// same record unchanged.
	UpsertUser(ctx context.Context, username string) (*User, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// AppendMessage persists a message and returns it with the
	// store-assigned ID, timestamp and resolved author username.
	AppendMessage(ctx context.Context, text string, userID int64) (*Message, error)

	// RecentMessages returns up to limit of the most recent messages,
	// oldest first, each carrying its author's username.
	RecentMessages(ctx context.Context, limit int) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
