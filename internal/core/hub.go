package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/papochat/papo-server/internal/store"
)

// Hub coordinates all connected clients. A single Run goroutine owns
// the client and session registries and performs every store call, so
// commands are handled strictly in arrival order and broadcasts are
// issued by a single writer. Per-client command channels are pumped
// into the hub inbox one goroutine per client, which preserves each
// connection's own event order.
type Hub struct {
	store        store.Store
	log          *zerolog.Logger
	historyLimit int

	register   chan *Client
	unregister chan *Client
	inbox      chan inboundCommand

	clients  map[string]*Client
	sessions map[string]*Session
}

type inboundCommand struct {
	client  *Client
	command *Command
}

// NewHub creates a hub backed by the given store. A nil logger disables
// logging. historyLimit <= 0 falls back to the store default.
func NewHub(st store.Store, logger *zerolog.Logger, historyLimit int) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if historyLimit <= 0 {
		historyLimit = store.DefaultHistoryLimit
	}
	return &Hub{
		store:        st,
		log:          logger,
		historyLimit: historyLimit,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		inbox:        make(chan inboundCommand, 64),
		clients:      make(map[string]*Client),
		sessions:     make(map[string]*Session),
	}
}

// RegisterClient adds a client to the hub. The hub starts consuming the
// client's Commands channel until UnregisterClient is called.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a client, fires its disconnect logic and
// closes the client's channels.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.addClient(ctx, c)
		case c := <-h.unregister:
			h.removeClient(c)
		case in := <-h.inbox:
			h.handle(ctx, in.client, in.command)
		}
	}
}

func (h *Hub) addClient(ctx context.Context, c *Client) {
	h.clients[c.ID] = c
	h.sessions[c.ID] = NewSession()
	h.log.Debug().Str("client_id", c.ID).Int("clients", len(h.clients)).Msg("client registered")

	go func() {
		for cmd := range c.Commands {
			select {
			case h.inbox <- inboundCommand{client: c, command: cmd}:
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (h *Hub) removeClient(c *Client) {
	sess, ok := h.sessions[c.ID]
	if !ok {
		return
	}
	delete(h.clients, c.ID)
	delete(h.sessions, c.ID)
	close(c.Commands)
	close(c.Events)

	// A connection that never joined leaves silently.
	if name := sess.Username(); name != "" {
		h.multicast(&Event{Kind: EventSystemNotice, Notice: fmt.Sprintf("%s saiu.", name)})
	}
	h.log.Debug().Str("client_id", c.ID).Int("clients", len(h.clients)).Msg("client unregistered")
}

func (h *Hub) handle(ctx context.Context, c *Client, cmd *Command) {
	sess, ok := h.sessions[c.ID]
	if !ok {
		// Command raced with disconnect; the session is gone.
		return
	}

	switch cmd.Kind {
	case CommandJoinChat:
		h.handleJoin(ctx, c, sess, cmd.Username)
	case CommandSendMessage:
		h.handleSend(ctx, c, sess, cmd.Text)
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, sess *Session, username string) {
	if username == "" {
		h.unicast(c, &Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "username is required")})
		return
	}
	if !sess.SetUsername(username) {
		h.unicast(c, &Event{Kind: EventError, Error: coreError(ErrCodeAlreadyJoined, "already joined")})
		return
	}

	// Store failures degrade the session instead of dropping the
	// connection: the username sticks, the user ID stays unresolved.
	user, err := h.store.UpsertUser(ctx, username)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", c.ID).Str("user", username).Msg("upsert user")
	} else {
		sess.SetUserID(user.ID)
	}

	history, err := h.store.RecentMessages(ctx, h.historyLimit)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", c.ID).Msg("fetch history")
		history = nil
	}
	h.unicast(c, &Event{Kind: EventHistory, Messages: messagesFromStore(history)})

	h.multicast(&Event{Kind: EventSystemNotice, Notice: fmt.Sprintf("%s entrou no chat!", username)})
}

func (h *Hub) handleSend(ctx context.Context, c *Client, sess *Session, text string) {
	if sess.Username() == "" {
		h.unicast(c, &Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join before sending")})
		return
	}
	userID, ok := sess.UserID()
	if !ok {
		// The join-time upsert failed, so there is no author to attach
		// the message to. Reject instead of appending an orphan row.
		h.unicast(c, &Event{Kind: EventError, Error: coreError(ErrCodeUserUnresolved, "user not resolved, message not sent")})
		return
	}

	msg, err := h.store.AppendMessage(ctx, text, userID)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", c.ID).Str("user", sess.Username()).Msg("append message")
		h.unicast(c, &Event{Kind: EventError, Error: coreError(ErrCodeSendFailed, "message not sent")})
		return
	}

	h.multicast(&Event{Kind: EventChatMessage, Message: messageFromStore(msg)})
}

// unicast delivers an event to a single client.
func (h *Hub) unicast(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		h.log.Warn().Str("client_id", c.ID).Msg("event dropped, slow consumer")
	}
}

// multicast delivers an event to every connected client, including the
// one that triggered it.
func (h *Hub) multicast(event *Event) {
	for _, c := range h.clients {
		h.unicast(c, event)
	}
}

func messageFromStore(msg *store.Message) Message {
	return Message{
		ID:        msg.ID,
		UserID:    msg.UserID,
		User:      msg.Username,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

func messagesFromStore(msgs []*store.Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageFromStore(m))
	}
	return out
}
