package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/papochat/papo-server/internal/core"
	"github.com/papochat/papo-server/internal/proto"
)

func TestInboundToCommandJoin(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(proto.Inbound{
		Type: proto.InboundTypeJoin,
		Data: json.RawMessage(`"alice"`),
	})
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %+v", err, protoErr)
	}
	if cmd.Kind != core.CommandJoinChat || cmd.Username != "alice" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestInboundToCommandJoinEmptyUsername(t *testing.T) {
	_, protoErr, err := inboundToCommand(proto.Inbound{
		Type: proto.InboundTypeJoin,
		Data: json.RawMessage(`""`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if protoErr == nil || protoErr.Code != core.ErrCodeBadRequest {
		t.Fatalf("expected bad_request, got %+v", protoErr)
	}
}

func TestInboundToCommandSend(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(proto.Inbound{
		Type: proto.InboundTypeSend,
		Data: json.RawMessage(`{"texto":"oi"}`),
	})
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %+v", err, protoErr)
	}
	if cmd.Kind != core.CommandSendMessage || cmd.Text != "oi" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestInboundToCommandMalformedData(t *testing.T) {
	_, _, err := inboundToCommand(proto.Inbound{
		Type: proto.InboundTypeJoin,
		Data: json.RawMessage(`{`),
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOutboundFromChatMessageFormatsTime(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 5, 7, 0, time.Local)
	out := outboundFromEvent(&core.Event{
		Kind: core.EventChatMessage,
		Message: core.Message{
			User:      "dave",
			Text:      "hi",
			CreatedAt: createdAt,
		},
	})

	if out.Type != proto.OutboundTypeMessage {
		t.Fatalf("unexpected type: %q", out.Type)
	}
	msg, ok := out.Data.(proto.ChatMessage)
	if !ok {
		t.Fatalf("unexpected data: %T", out.Data)
	}
	if msg.Usuario != "dave" || msg.Texto != "hi" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Horario != "09:05:07" {
		t.Fatalf("unexpected horario: %q", msg.Horario)
	}
}

func TestOutboundFromHistory(t *testing.T) {
	out := outboundFromEvent(&core.Event{
		Kind: core.EventHistory,
		Messages: []core.Message{
			{ID: 1, UserID: 2, User: "alice", Text: "a", CreatedAt: time.Now()},
		},
	})

	if out.Type != proto.OutboundTypeHistory {
		t.Fatalf("unexpected type: %q", out.Type)
	}
	history, ok := out.Data.([]proto.HistoryMessage)
	if !ok {
		t.Fatalf("unexpected data: %T", out.Data)
	}
	if len(history) != 1 || history[0].User.Username != "alice" || history[0].UserID != 2 {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestOutboundFromError(t *testing.T) {
	out := outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: core.ErrCodeSendFailed, Message: "message not sent"},
	})

	if out.Type != proto.OutboundTypeError {
		t.Fatalf("unexpected type: %q", out.Type)
	}
	if out.Error == nil || out.Error.Code != core.ErrCodeSendFailed {
		t.Fatalf("unexpected error payload: %+v", out.Error)
	}
}
