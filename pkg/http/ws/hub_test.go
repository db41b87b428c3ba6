package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// newHubServer registers every upgraded connection with hub and keeps it
// open until the client leaves.
func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewConnection(conn, zerolog.Nop())
		hub.Register(c)
		defer hub.Unregister(c.ID)
		go c.WritePump()
		c.ReadPump(func(Message) error { return nil })
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newHubServer(t, hub)

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 5*time.Millisecond)

	msg, err := NewMessage(TypeQuestionsAdded, QuestionsAddedPayload{Filename: "quiz.txt", QuestionCount: 3, Total: 7})
	require.NoError(t, err)
	require.NoError(t, hub.BroadcastAll(msg))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		var got Message
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, TypeQuestionsAdded, got.Type)

		var payload QuestionsAddedPayload
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, QuestionsAddedPayload{Filename: "quiz.txt", QuestionCount: 3, Total: 7}, payload)
	}
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newHubServer(t, hub)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubCloseAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newHubServer(t, hub)

	dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	hub.CloseAll()
	assert.Equal(t, 0, hub.Len())
	assert.NoError(t, hub.BroadcastAll(Message{Type: TypePong}))
}

func TestConnectionSendAfterClose(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	var captured *Connection
	ready := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		captured = NewConnection(conn, zerolog.Nop())
		hub.Register(captured)
		close(ready)
	}))
	t.Cleanup(srv.Close)

	dial(t, srv)
	<-ready

	captured.Close()
	assert.ErrorIs(t, captured.Send(Message{Type: TypePong}), ErrConnectionClosed)
}

func TestNewMessageWithoutPayload(t *testing.T) {
	msg, err := NewMessage(TypePong, nil)
	require.NoError(t, err)
	assert.Equal(t, TypePong, msg.Type)
	assert.Nil(t, msg.Payload)
}
