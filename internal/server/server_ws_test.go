package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"tutti-frutti/internal/store"

	"github.com/gorilla/websocket"
)

func dialRoom(t *testing.T, tsURL, roomID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(tsURL, "http") + "/ws/rooms/" + roomID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readChange(t *testing.T, conn *websocket.Conn, timeout time.Duration) store.Change {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read websocket message: %v", err)
	}
	var change store.Change
	if err := json.Unmarshal(payload, &change); err != nil {
		t.Fatalf("decode change: %v", err)
	}
	return change
}

func TestWebsocketInitialSync(t *testing.T) {
	ts := newTestServer(t)
	roomID, _, _ := createRoom(t, ts)

	conn := dialRoom(t, ts.URL, roomID)
	change := readChange(t, conn, 5*time.Second)
	if change.Event != "sync" || change.RoomID != roomID {
		t.Fatalf("expected initial sync envelope, got %+v", change)
	}
}

func TestWebsocketUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/rooms/00000000-0000-0000-0000-000000000001"
	if _, resp, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatalf("expected dial to fail for an unknown room")
	} else if resp != nil && resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestWebsocketRelaysRoomChanges(t *testing.T) {
	ts := newTestServer(t)
	roomID, joinCode, _ := createRoom(t, ts)

	conn := dialRoom(t, ts.URL, roomID)
	change := readChange(t, conn, 5*time.Second)
	if change.Event != "sync" {
		t.Fatalf("expected sync first, got %+v", change)
	}

	joinPlayer(t, ts, joinCode, "Ben")

	change = readChange(t, conn, 5*time.Second)
	if change.Table != store.TablePlayers || change.RoomID != roomID {
		t.Fatalf("expected a players change, got %+v", change)
	}
}

func TestWebsocketIgnoresOtherRooms(t *testing.T) {
	ts := newTestServer(t)
	roomID, _, _ := createRoom(t, ts)
	_, otherJoinCode, _ := createRoom(t, ts)

	conn := dialRoom(t, ts.URL, roomID)
	readChange(t, conn, 5*time.Second)

	joinPlayer(t, ts, otherJoinCode, "Zed")

	_ = conn.SetReadDeadline(time.Now().Add(350 * time.Millisecond))
	if _, payload, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected no message for another room, got %s", payload)
	}
}
