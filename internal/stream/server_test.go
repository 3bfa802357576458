package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitForViewers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Viewers() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("viewer count never reached %d (got %d)", want, hub.Viewers())
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForViewers(t, hub, 1)

	sent := Frame{
		Iteration:    3,
		PercentHappy: 87.5,
		Width:        2,
		Height:       2,
		Cells:        []int{0, 1, 2, 1},
	}
	hub.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Frame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if got.Iteration != sent.Iteration || got.PercentHappy != sent.PercentHappy {
		t.Fatalf("frame stats = %+v, want %+v", got, sent)
	}
	if got.Width != sent.Width || got.Height != sent.Height || len(got.Cells) != len(sent.Cells) {
		t.Fatalf("frame shape = %+v, want %+v", got, sent)
	}
	for i := range sent.Cells {
		if got.Cells[i] != sent.Cells[i] {
			t.Fatalf("cell %d = %d, want %d", i, got.Cells[i], sent.Cells[i])
		}
	}
}

func TestHubDropsClosedViewers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitForViewers(t, hub, 1)

	conn.Close()
	waitForViewers(t, hub, 0)

	// Broadcasting with no viewers is a no-op.
	hub.Broadcast(Frame{Iteration: 1})
}
