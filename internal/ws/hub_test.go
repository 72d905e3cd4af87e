package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-coach/internal/infrastructure/events"
	"resume-coach/internal/pkg/jwt"

	"github.com/gorilla/websocket"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (jwt.Claims, error) {
	sub, ok := s[token]
	if !ok {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	var c jwt.Claims
	c.Subject = sub
	return c, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestHub_SendReachesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	if !hub.Send("", []byte("hello")) {
		t.Fatalf("expected broadcast to be queued")
	}

	select {
	case msg := <-c.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message: %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for message")
	}

	hub.Unregister(c)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_SendRoutesByUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := &Client{hub: hub, send: make(chan []byte, 4), userID: "alice"}
	bob := &Client{hub: hub, send: make(chan []byte, 4), userID: "bob"}
	anon := &Client{hub: hub, send: make(chan []byte, 4)}
	for _, c := range []*Client{alice, bob, anon} {
		hub.Register(c)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	hub.Send("alice", []byte("private"))
	hub.Send("", []byte("public"))

	waitFor(t, func() bool { return len(alice.send) == 2 && len(bob.send) == 1 && len(anon.send) == 1 })
	if msg := <-alice.send; string(msg) != "private" {
		t.Fatalf("expected alice to get the private event first, got %s", msg)
	}
	if msg := <-bob.send; string(msg) != "public" {
		t.Fatalf("expected bob to get only the public event, got %s", msg)
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	c := &Client{hub: hub, send: make(chan []byte)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Send("", []byte("x"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_StopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	<-done

	if _, ok := <-c.send; ok {
		t.Fatalf("expected send channel to be closed")
	}
}

func TestPublisher_NoClientsIsNoop(t *testing.T) {
	p := NewPublisher(NewHub(nil))
	if err := p.Publish(context.Background(), events.New(events.TypeResumeAnalyzed, "", nil)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestHandler_UserFromToken(t *testing.T) {
	h := NewHandler(NewHub(nil), nil, stubVerifier{"good": "user-7"}, nil)

	r := httptest.NewRequest(http.MethodGet, "/ws/events?token=good", nil)
	if got := h.userID(r); got != "user-7" {
		t.Fatalf("expected user-7 from query token, got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/ws/events?token=bad", nil)
	r.Header.Set("Authorization", "Bearer good")
	if got := h.userID(r); got != "user-7" {
		t.Fatalf("expected header token to win, got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/ws/events?token=bad", nil)
	if got := h.userID(r); got != "" {
		t.Fatalf("expected anonymous for a bad token, got %q", got)
	}

	if got := NewHandler(NewHub(nil), nil, nil, nil).userID(r); got != "" {
		t.Fatalf("expected anonymous without a verifier, got %q", got)
	}
}

func TestServer_StreamsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewServer("", NewHandler(hub, nil, nil, nil)).Handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	evt := events.New(events.TypeResumeGenerated, "", map[string]string{"job_title": "Engineer"})
	if err := NewPublisher(hub).Publish(context.Background(), evt); err != nil {
		t.Fatalf("publish: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got events.Event
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != evt.ID || got.Type != events.TypeResumeGenerated {
		t.Fatalf("unexpected event: %+v", got)
	}
}
