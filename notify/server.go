// Package notify accepts events from external programs over a local
// websocket and republishes them onto the application bus. It only
// ever produces events; nothing here touches the device.
package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/sersorrel/lp/events"
)

// wireMessage is what external clients send. "notify" triggers the
// alert animation; "media" updates the play/pause surface.
type wireMessage struct {
	Event   string `json:"event"`
	Playing bool   `json:"playing"`
}

// Server is the websocket listener.
type Server struct {
	bus        *events.Bus
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// NewServer builds a server publishing to bus, listening on addr. Bind
// to loopback; there is no authentication.
func NewServer(bus *events.Bus, addr string) *Server {
	s := &Server{
		bus: bus,
		upgrader: websocket.Upgrader{
			// local clients only, any origin is fine
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/notify", s.handleNotify)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe blocks until the listener fails or Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("notifier connected")

	// A runaway client must not be able to flood the bus faster than
	// the frame loop can drain it.
	limiter := rate.NewLimiter(20, 40)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("notifier disconnected")
			return
		}
		if !limiter.Allow() {
			log.Warn().Str("remote", conn.RemoteAddr().String()).Msg("notifier over rate limit, dropping")
			continue
		}
		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("bad notify message")
			continue
		}
		switch msg.Event {
		case "notify":
			s.bus.Publish(events.Event{Type: events.Notify})
		case "media":
			s.bus.Publish(events.Event{Type: events.Media, Playing: msg.Playing})
		default:
			log.Warn().Str("event", msg.Event).Msg("unknown notify event")
		}
	}
}
