package http

import (
	"net/http"
	"time"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// streamMessage is the websocket frame sent for every state change.
type streamMessage struct {
	Type  string          `json:"type"`
	State dashboard.State `json:"state"`
}

// handleStream upgrades to a websocket and pushes a snapshot after every
// state change. A slow client skips intermediate snapshots but always
// receives the newest one.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if s.deps.Metrics != nil {
		s.deps.Metrics.ActiveStreams.Inc()
		defer s.deps.Metrics.ActiveStreams.Dec()
	}

	updates := make(chan dashboard.State, 1)
	unsubscribe := s.deps.Store.Subscribe(func(st dashboard.State) {
		latest(updates, st)
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go s.readPump(conn, closed)

	if !writeState(conn, s.deps.Store.Snapshot()) {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-s.runCtx.Done():
			conn.WriteControl(websocket.CloseMessage, //nolint:errcheck // closing anyway
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case st := <-updates:
			if !writeState(conn, st) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // surfaced by WriteMessage
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and closes done when the peer goes away.
func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck // surfaced by ReadMessage
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket closed", "error", err)
			}
			return
		}
	}
}

func writeState(conn *websocket.Conn, st dashboard.State) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // surfaced by WriteJSON
	return conn.WriteJSON(streamMessage{Type: "state", State: st}) == nil
}

// latest replaces any pending value in ch with st.
func latest(ch chan dashboard.State, st dashboard.State) {
	for {
		select {
		case ch <- st:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
