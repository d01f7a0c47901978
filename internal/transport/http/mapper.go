package http

import (
	"encoding/json"

	"github.com/papochat/papo-server/internal/core"
	"github.com/papochat/papo-server/internal/proto"
)

// timeOfDayLayout formats the horario field of a broadcast message.
const timeOfDayLayout = "15:04:05"

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var username string
		if err := json.Unmarshal(inbound.Data, &username); err != nil {
			return nil, nil, err
		}
		if username == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "username is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinChat,
			Username: username,
		}, nil, nil
	case proto.InboundTypeSend:
		var send proto.SendData
		if err := json.Unmarshal(inbound.Data, &send); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Text: send.Texto,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventHistory:
		messages := make([]proto.HistoryMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, proto.HistoryMessage{
				ID:        msg.ID,
				Text:      msg.Text,
				CreatedAt: msg.CreatedAt,
				UserID:    msg.UserID,
				User:      proto.HistoryUser{Username: msg.User},
			})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: messages,
		}
	case core.EventSystemNotice:
		return proto.Outbound{
			Type: proto.OutboundTypeSystem,
			Data: event.Notice,
		}
	case core.EventChatMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: proto.ChatMessage{
				Usuario: event.Message.User,
				Texto:   event.Message.Text,
				Horario: event.Message.CreatedAt.Local().Format(timeOfDayLayout),
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}
