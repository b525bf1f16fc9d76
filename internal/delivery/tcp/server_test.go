package tcp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"go-hospital-server/config"
	"go-hospital-server/internal/delivery/tcp/protocol"
	"go-hospital-server/pkg/response"
)

func startTestServer(t *testing.T, router *Router) (*Server, net.Addr) {
	t.Helper()

	cfg := config.TCPConfig{
		Port:           "0",
		ReadTimeout:    2 * time.Second,
		WriteTimeout:   2 * time.Second,
		RequestTimeout: 2 * time.Second,
	}

	server := NewServer(cfg, testLogger(), router)
	go func() {
		if err := server.Start(); err != nil {
			t.Errorf("server start failed: %v", err)
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for server.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server never started listening")
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	})

	return server, server.Addr()
}

func TestServerRequestResponseRoundTrip(t *testing.T) {
	router := NewRouter(testLogger())
	if err := router.Register("login", func(context.Context, []byte) *response.Response {
		return response.Success(map[string]string{"username": "alice"})
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, addr := startTestServer(t, router)

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("failed to dial server: %v", err)
	}
	defer conn.Close()

	codec := protocol.NewHeaderCodec()
	if err := codec.WriteFrame(conn, protocol.TypeJSONRequest, []byte(`{"action":"login","uuid":"req-1"}`)); err != nil {
		t.Fatalf("failed to write request: %v", err)
	}

	msgType, payload, err := codec.ReadFrame(conn)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if msgType != protocol.TypeJSONResponse {
		t.Fatalf("expected JSON response frame, got type %d", msgType)
	}

	var resp response.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.Type != "login_response" || resp.RequestUUID != "req-1" {
		t.Fatalf("envelope metadata wrong: %+v", resp)
	}
}

func TestServerHeartbeat(t *testing.T) {
	_, addr := startTestServer(t, NewRouter(testLogger()))

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("failed to dial server: %v", err)
	}
	defer conn.Close()

	codec := protocol.NewHeaderCodec()
	if err := codec.WriteFrame(conn, protocol.TypeHeartbeatPing, nil); err != nil {
		t.Fatalf("failed to write ping: %v", err)
	}

	msgType, payload, err := codec.ReadFrame(conn)
	if err != nil {
		t.Fatalf("failed to read pong: %v", err)
	}
	if msgType != protocol.TypeHeartbeatPong {
		t.Fatalf("expected pong, got type %d", msgType)
	}
	if len(payload) != 0 {
		t.Fatalf("pong must carry no payload, got %d bytes", len(payload))
	}
}

func TestServerClosesOnBadMagic(t *testing.T) {
	_, addr := startTestServer(t, NewRouter(testLogger()))

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("failed to dial server: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("GARBAGE NOT A FRAME")); err != nil {
		t.Fatalf("failed to write garbage: %v", err)
	}

	// The server must drop the connection instead of answering.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if _, err := conn.Read(buf); err == nil {
		t.Fatal("expected connection to be closed")
	}
}

func TestServerConnectionSurvivesUnknownAction(t *testing.T) {
	router := NewRouter(testLogger())
	if err := router.Register("login", func(context.Context, []byte) *response.Response {
		return response.Success(nil)
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, addr := startTestServer(t, router)

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("failed to dial server: %v", err)
	}
	defer conn.Close()

	codec := protocol.NewHeaderCodec()

	// Unknown action gets a failure envelope, then the same connection
	// serves the next request.
	if err := codec.WriteFrame(conn, protocol.TypeJSONRequest, []byte(`{"action":"bogus"}`)); err != nil {
		t.Fatalf("failed to write request: %v", err)
	}
	_, payload, err := codec.ReadFrame(conn)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var resp response.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if resp.Success || resp.Error != "unknown action" {
		t.Fatalf("expected unknown action failure, got %+v", resp)
	}

	if err := codec.WriteFrame(conn, protocol.TypeJSONRequest, []byte(`{"action":"login"}`)); err != nil {
		t.Fatalf("failed to write second request: %v", err)
	}
	_, payload, err = codec.ReadFrame(conn)
	if err != nil {
		t.Fatalf("connection did not survive unknown action: %v", err)
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success on second request, got %q", resp.Error)
	}
}
