// apps/go-server/internal/httpserver/ws.go
//
// Live table stream over a websocket.
// Every message is an envelope {"t": type, "p": payload}:
//   - "state" → full snapshot, sent on connect and after every transition
//   - "tick"  → {"remaining": n, "timer": "m:ss"} while guessing
//
// The socket is server-to-client only; anything the client sends is read and
// dropped so close frames and pongs are processed. The stream ends when the
// client goes away or the table is closed (deleted or replaced).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spectrum/apps/go-server/internal/countdown"
	"github.com/robalobadob/spectrum/apps/go-server/internal/table"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 25 * time.Second
	wsWriteWait  = 10 * time.Second
	wsReadLimit  = 1 << 10
)

// envelope is the wire frame for every stream message.
type envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// tickPayload is the body of a "tick" envelope.
type tickPayload struct {
	Remaining int    `json:"remaining"`
	Timer     string `json:"timer"`
}

// encodeEnvelope wraps payload in an envelope of type t.
func encodeEnvelope(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("envelope type is empty")
	}
	if payload == nil {
		return nil, errors.New("envelope payload is nil")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{T: t, P: pb})
}

// upgrader accepts the configured client origin; outside production any origin is allowed.
func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return !s.cfg.Production() || origin == "" || origin == s.cfg.ClientOrigin
		},
	}
}

// handleStream upgrades the request and relays table events until either side goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	t := tableFrom(r.Context())
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("table", t.ID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	events, cancel := t.Subscribe()
	defer cancel()

	// Basic timeouts + pong handling (keeps connections healthy)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug().Str("table", t.ID).Msg("stream opened")
	defer func() { log.Debug().Str("table", t.ID).Msg("stream closed") }()

	if err := writeEnvelope(conn, table.EventState, t.Snapshot()); err != nil {
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "table closed")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
				return
			}
			if err := writeEnvelope(conn, ev.Type, eventPayload(ev)); err != nil {
				log.Debug().Err(err).Str("table", t.ID).Msg("stream write")
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

func eventPayload(ev table.Event) any {
	if ev.Type == table.EventTick {
		return tickPayload{Remaining: ev.Remaining, Timer: countdown.FormatTime(ev.Remaining)}
	}
	return ev.State
}

func writeEnvelope(conn *websocket.Conn, t string, payload any) error {
	b, err := encodeEnvelope(t, payload)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}
