package notify

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"turn_queue/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, hub *Hub, url, channel string) *websocket.Conn {
	t.Helper()
	before := hub.Subscribers(channel)
	conn, _, err := websocket.DefaultDialer.Dial(url+"?channel="+channel, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.Subscribers(channel) == before+1 }, time.Second, 5*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]any
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHubRoutesEventsByChannel(t *testing.T) {
	hub, url := startHub(t)
	turns := dial(t, hub, url, ChannelTurns)
	windows := dial(t, hub, url, ChannelWindows)
	all := dial(t, hub, url, ChannelAll)

	ticket := &models.Ticket{ID: "t1", Number: 7, Status: models.StatusPending, CreatedAt: time.Now()}
	hub.Publish(TicketCreated(ticket), WindowBell(3, &ticket.Number))

	msg := readEvent(t, turns)
	assert.Equal(t, EventTicketCreated, msg["event"])
	data := msg["data"].(map[string]any)
	assert.Equal(t, float64(7), data["number"])
	assert.Equal(t, "PENDING", data["status"])

	msg = readEvent(t, windows)
	assert.Equal(t, EventWindowBell, msg["event"])
	assert.Equal(t, float64(3), msg["data"].(map[string]any)["windowNumber"])

	assert.Equal(t, EventTicketCreated, readEvent(t, all)["event"])
	assert.Equal(t, EventWindowBell, readEvent(t, all)["event"])
}

func TestHubRejectsUnknownChannel(t *testing.T) {
	_, url := startHub(t)
	_, resp, err := websocket.DefaultDialer.Dial(url+"?channel=nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestRecorderKeepsOrder(t *testing.T) {
	r := NewRecorder()
	r.Publish(QueueReset(), WindowStateChanged())
	assert.Equal(t, []string{EventQueueReset, EventWindowStateChanged}, r.Names())
	r.Reset()
	assert.Empty(t, r.Events())
}

func TestHubShutdownReleasesConnections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	returned := make(chan struct{}, 2)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c)
		returned <- struct{}{}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	before := dial(t, hub, url, ChannelAll)
	cancel()

	require.NoError(t, before.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := before.ReadMessage()
	assert.Error(t, err, "open connections are closed on shutdown")

	after, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer after.Close()
	require.NoError(t, after.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = after.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "late connections are turned away: %v", err)

	for i := 0; i < 2; i++ {
		select {
		case <-returned:
		case <-time.After(2 * time.Second):
			t.Fatal("websocket handler still blocked after hub shutdown")
		}
	}
	assert.Zero(t, hub.Subscribers(ChannelAll))
}
