package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	// InboundTypeJoin establishes the session's username. Data is a
	// bare JSON string.
	InboundTypeJoin = "entrar_chat"
	// InboundTypeSend broadcasts a chat message. Data is SendData.
	InboundTypeSend = "enviar_mensagem"

	// OutboundTypeHistory delivers recent messages to the joiner only.
	OutboundTypeHistory = "historico_mensagens"
	// OutboundTypeSystem announces a participant entering or leaving.
	OutboundTypeSystem = "mensagem_sistema"
	// OutboundTypeMessage delivers a chat message to everyone.
	OutboundTypeMessage = "receber_mensagem"
	// OutboundTypeError reports a rejected operation to one client.
	OutboundTypeError = "error"
)

// SendData is a chat message from the client.
type SendData struct {
	Texto string `json:"texto"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// HistoryUser carries the author inside a history entry.
type HistoryUser struct {
	Username string `json:"username"`
}

// HistoryMessage is one entry of the history replay.
type HistoryMessage struct {
	ID        int64       `json:"id"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
	UserID    int64       `json:"userId"`
	User      HistoryUser `json:"user"`
}

// ChatMessage is a live message broadcast to every client. Horario is
// the message's locale time of day.
type ChatMessage struct {
	Usuario string `json:"usuario"`
	Texto   string `json:"texto"`
	Horario string `json:"horario"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
