package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/http"
)

func dialEvents(t *testing.T, server *httptest.Server, duelID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/duels/" + duelID + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWatchStream(t *testing.T) {
	e := newServer(t)
	server := httptest.NewServer(e)
	defer server.Close()

	duel := createDuel(t, e)
	conn := dialEvents(t, server, duel.ID)
	base := "/v1/duels/" + duel.ID

	preview := decode[httpadapter.PreviewResponse](t, do(t, e, http.MethodPost, base+"/preview", ""))
	require.Equal(t, http.StatusOK, do(t, e, http.MethodPost, base+"/choose", `{"card_id":"`+preview.Duel.Player.Hand[0].ID+`"}`).Code)
	res := decode[httpadapter.ResolveResponse](t, do(t, e, http.MethodPost, base+"/resolve", ""))

	var ev httpadapter.EventResponse
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "round_resolved", ev.Kind)
	require.NotNil(t, ev.Outcome)
	require.NotNil(t, ev.Spin)
	assert.Equal(t, res.Outcome.FinalToken, ev.Outcome.FinalToken)
	assert.Equal(t, res.Duel.Round, ev.Duel.Round)
	assert.Empty(t, ev.Duel.Enemy.Hand)

	require.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, base, "").Code)
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestWatchUnknownDuel(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/v1/duels/nope/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
