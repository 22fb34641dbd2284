package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/app"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/spin"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Watch upgrades to a websocket and pushes every state change of the duel
// as an EventResponse. The stream is read-only; client frames are
// discarded. It ends when the client goes away or the duel is deleted.
func (h *Handler) Watch(c echo.Context) error {
	id := c.Param("id")
	events, cancel, err := h.svc.Watch(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	defer cancel()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied to the client.
		return nil
	}
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("watch read error", "duel_id", id, "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return nil
		case ev, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "duel closed"))
				return nil
			}
			if err := conn.WriteJSON(h.toEventResponse(ev)); err != nil {
				return nil
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

func (h *Handler) toEventResponse(ev app.Event) EventResponse {
	resp := EventResponse{Kind: string(ev.Kind), Duel: toDuelResponse(ev.View), Outcome: ev.Outcome}
	if ev.Outcome != nil {
		s := toSpinResponse(spin.Plan(*ev.Outcome, h.spin))
		resp.Spin = &s
	}
	return resp
}
