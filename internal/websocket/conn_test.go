package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// The leaderboard handler writes from two goroutines on one connection
// (its read loop and the Redis subscription). This exercises that shape
// through the shared write path; the race detector flags any regression
// back to unlocked writes.
func TestWriteTypedConcurrent(t *testing.T) {
	const (
		writers         = 8
		framesPerWriter = 25
	)

	upgrader := websocket.Upgrader{}
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn := NewConn(raw)
		defer conn.Close()

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < framesPerWriter; j++ {
					if err := WriteTyped(conn, PongResponse{Event: EventPong}); err != nil {
						t.Errorf("concurrent write: %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()
		close(done)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	for i := 0; i < writers*framesPerWriter; i++ {
		var resp PongResponse
		if err := client.ReadJSON(&resp); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if resp.Event != EventPong {
			t.Fatalf("frame %d event = %q, want %q", i, resp.Event, EventPong)
		}
	}
	<-done
}

func TestWriteErrorEnvelope(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn := NewConn(raw)
		defer conn.Close()
		if err := WriteError(conn, "unknown action: nope"); err != nil {
			t.Errorf("write error: %v", err)
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	var resp ErrorResponse
	if err := client.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Event != EventError {
		t.Fatalf("event = %q, want %q", resp.Event, EventError)
	}
	if resp.Error != "unknown action: nope" {
		t.Fatalf("error = %q", resp.Error)
	}
}
