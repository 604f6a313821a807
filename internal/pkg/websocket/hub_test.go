package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	mu    sync.Mutex
	users []string
}

func (f *fakeMarker) MarkAllReadFor(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, username)
	return nil
}

func (f *fakeMarker) marked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.users...)
}

func setupHub(t *testing.T, username string) (*Hub, *fakeMarker, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	marker := &fakeMarker{}
	NewMessageHandler(hub, marker, zerolog.Nop()).Start(ctx)

	identity := func(c *gin.Context) (string, bool) {
		if username == "" {
			return "", false
		}
		return username, true
	}
	r := gin.New()
	r.GET("/ws", NewHandler(hub, identity, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, marker, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestHub_DeliversNotificationsToUser(t *testing.T) {
	hub, _, url := setupHub(t, "ana")

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientsCount("ana") == 1 }, time.Second, 10*time.Millisecond)

	hub.Notify("someone-else", "not for ana")
	hub.Notify("ana", "Your application status changed")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MessageTypeNotification, msg.Type)
	assert.Equal(t, "ana", msg.Username)
	assert.Equal(t, "Your application status changed", msg.Content)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestHub_InboundMarkReadUsesConnectionIdentity(t *testing.T) {
	hub, marker, url := setupHub(t, "ana")

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientsCount("ana") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypeMarkRead, Username: "mallory"}))

	require.Eventually(t, func() bool { return len(marker.marked()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ana"}, marker.marked())
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, _, url := setupHub(t, "ana")

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientsCount("ana") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientsCount("ana") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_RejectsAnonymous(t *testing.T) {
	_, _, url := setupHub(t, "")

	_, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestHub_PublishWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	for i := 0; i < 1000; i++ {
		hub.Notify("ana", "queued")
	}
}

func TestHub_StoppedHubReleasesClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	client := &Client{hub: hub, send: make(chan []byte, 1), username: "ana"}
	returned := make(chan bool, 1)
	go func() {
		added := hub.add(client)
		hub.remove(client)
		returned <- added
	}()

	select {
	case added := <-returned:
		assert.False(t, added)
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked on a stopped hub")
	}
	assert.Zero(t, hub.ClientsCount("ana"))
}

func TestHandler_ClosesConnectionAfterHubStops(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	r := gin.New()
	r.GET("/ws", NewHandler(hub, func(*gin.Context) (string, bool) { return "ana", true }, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(r)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientsCount("ana") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	// the hub closed the live client on the way out
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	var closeErr *gorillaws.CloseError
	assert.ErrorAs(t, err, &closeErr)
	conn.Close()

	// new connections are refused instead of hanging the handler
	late, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer late.Close()
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = late.ReadMessage()
	assert.True(t, gorillaws.IsCloseError(err, gorillaws.CloseGoingAway), "got %v", err)
}
