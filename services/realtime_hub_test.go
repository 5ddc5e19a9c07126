package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastProgressConcurrentWriters(t *testing.T) {
	hub := NewRealtimeHub()
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	registered := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: 1, Conn: conn}
		hub.Register(cl)
		registered <- cl
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(cl)
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	var cl *WSClient
	select {
	case cl = <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("client never registered")
	}

	const writers = 4
	const perWriter = 200
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	got := make(chan struct{})
	go func() {
		for n := 0; n < writers*perWriter; n++ {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
		close(got)
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.BroadcastProgress(1, "entries", day, nil)
			}
		}()
	}
	// keep-alive pings contend with the broadcasters for the same conn
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < perWriter; j++ {
			if err := cl.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()
	wg.Wait()

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for broadcast frames")
	}
}
