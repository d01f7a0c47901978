package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/papochat/papo-server/internal/config"
	"github.com/papochat/papo-server/internal/core"
	"github.com/papochat/papo-server/internal/proto"
	"github.com/papochat/papo-server/internal/store/sqlite"
)

func testLogger() *zerolog.Logger {
	nop := zerolog.Nop()
	return &nop
}

// startTestServer spins up a hub backed by an in-memory SQLite store
// and an httptest server around the real router.
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := core.NewHub(st, nil, 0)
	go hub.Run(ctx)

	server := NewServer(hub, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, testLogger())

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func sendJoin(ctx context.Context, t *testing.T, conn *websocket.Conn, username string) {
	t.Helper()

	payload, err := json.Marshal(username)
	if err != nil {
		t.Fatalf("marshal join: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeJoin, Data: payload}); err != nil {
		t.Fatalf("write join: %v", err)
	}
}

func sendMessage(ctx context.Context, t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()

	payload, err := json.Marshal(proto.SendData{Texto: text})
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeSend, Data: payload}); err != nil {
		t.Fatalf("write message: %v", err)
	}
}

// frame is the decoded shape of an outbound envelope for assertions.
type frame struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

// mustFrame reads frames until one of the given type shows up.
func mustFrame(ctx context.Context, t *testing.T, conn *websocket.Conn, frameType string) frame {
	t.Helper()

	for {
		var f frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			t.Fatalf("read frame waiting for %q: %v", frameType, err)
		}
		if f.Type == frameType {
			return f
		}
	}
}
