package app

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resume-coach/internal/config"
	"resume-coach/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

func offlineConfig() config.Config {
	return config.Config{
		App: config.AppConfig{
			AppName:     "resume-coach",
			Environment: "test",
			HTTPPort:    "8080",
			WSPort:      "8081",
		},
		Resume: config.ResumeConfig{MaxBytes: 1 << 20},
	}
}

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", " :9000 ": ":9000"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q): expected %q, got %q (%v)", in, want, got, err)
		}
	}
	if _, err := ListenAddr(" "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestBootstrap_OfflineServesRoutes(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), offlineConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer func() { _ = cleanup() }()

	if a.WS == nil || a.WS.Addr != ":8081" {
		t.Fatalf("expected websocket server on :8081")
	}

	resp, err := a.Fiber.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var env struct {
		Data map[string]string `json:"data"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&env)
	if env.Data["ai_mode"] != "offline" || env.Data["jobs_mode"] != "offline" {
		t.Fatalf("unexpected health data: %v", env.Data)
	}

	resp, err = a.Fiber.Test(httptest.NewRequest("GET", "/api/v1/jobs/search?keywords=designer", nil))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestStartBackground_NoWarmerWhenOffline(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), offlineConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer func() { _ = cleanup() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.StartBackground(ctx); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.container.Warmer != nil {
		t.Fatalf("expected no warmer without job API credentials")
	}
}

func TestAnalyze_BodyAboveServerLimit(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), offlineConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer func() { _ = cleanup() }()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = a.Fiber.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}) }()
	defer func() { _ = a.Fiber.Shutdown() }()

	conn, err := net.DialTimeout("tcp", ln.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	// The declared length alone exceeds BodyLimit; the server answers before reading the body.
	declared := int(offlineConfig().Resume.MaxBytes) + bodyLimitSlack + 1
	if _, err := fmt.Fprintf(conn, "POST %s HTTP/1.1\r\nHost: localhost\r\nContent-Type: multipart/form-data; boundary=xyz\r\nContent-Length: %d\r\n\r\n", routes.AnalyzePath, declared); err != nil {
		t.Fatalf("write: %v", err)
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	defer resp.Body.Close()

	var env struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != 400 || env.Status != 400 || env.Message != "resume file is too large" {
		t.Fatalf("expected 400 resume file is too large, got %d %+v", resp.StatusCode, env)
	}
}
