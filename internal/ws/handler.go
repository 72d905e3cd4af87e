package ws

import (
	"log"
	"net/http"
	"strings"
	"time"

	"resume-coach/internal/pkg/jwt"

	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	verifier jwt.Verifier
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler accepts upgrades from any origin when allowedOrigins is empty
// or contains "*". A nil verifier makes every client anonymous.
func NewHandler(hub *Hub, allowedOrigins []string, verifier jwt.Verifier, logger *log.Logger) *Handler {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return &Handler{
		hub:      hub,
		verifier: verifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.hub == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	userID := h.userID(r)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("[WS] Upgrade failed | err=%v", err)
		}
		return
	}

	client := NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

// userID reads the caller from a bearer header or, since browsers cannot set
// headers on upgrade requests, the token query parameter. Bad tokens leave
// the caller anonymous.
func (h *Handler) userID(r *http.Request) string {
	if h.verifier == nil {
		return ""
	}
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if scheme, rest, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " "); ok && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(rest)
	}
	if token == "" {
		return ""
	}
	claims, err := h.verifier.Verify(token)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// NewServer serves the event stream at /ws/events on its own listener.
func NewServer(addr string, h *Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws/events", h)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
