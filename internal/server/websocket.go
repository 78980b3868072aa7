package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"tutti-frutti/internal/store"

	"github.com/gorilla/websocket"
)

// wsHub relays store change events to room subscribers. The first
// connection for a room opens one changefeed subscription; its events fan
// out to every connection in the group. Clients treat each envelope as a
// hint to re-read current rows.
type wsHub struct {
	mu    sync.Mutex
	rooms map[string]*wsRoom
}

type wsRoom struct {
	conns  map[*websocket.Conn]struct{}
	cancel func()
}

func newWSHub() *wsHub {
	return &wsHub{
		rooms: make(map[string]*wsRoom),
	}
}

func (h *wsHub) Add(roomID string, conn *websocket.Conn, feed *store.Changefeed) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[roomID]
	if room == nil {
		ch, cancel := feed.Subscribe(roomID)
		room = &wsRoom{
			conns:  make(map[*websocket.Conn]struct{}),
			cancel: cancel,
		}
		h.rooms[roomID] = room
		go h.relay(roomID, ch)
	}
	room.conns[conn] = struct{}{}
}

func (h *wsHub) Remove(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[roomID]
	if room == nil {
		return
	}
	delete(room.conns, conn)
	_ = conn.Close()
	if len(room.conns) == 0 {
		room.cancel()
		delete(h.rooms, roomID)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) relay(roomID string, ch <-chan store.Change) {
	for change := range ch {
		h.Broadcast(roomID, change)
	}
}

func (h *wsHub) Broadcast(roomID string, payload any) {
	h.mu.Lock()
	room := h.rooms[roomID]
	conns := make([]*websocket.Conn, 0)
	if room != nil {
		for conn := range room.conns {
			conns = append(conns, conn)
		}
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(roomID, conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.store.RoomByID(roomID); err != nil {
		http.NotFound(w, r)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected room_id=%s remote=%s", roomID, r.RemoteAddr)
	s.ws.Add(roomID, conn, s.store.Feed())
	// Initial nudge so the client does a first full read.
	s.ws.Send(conn, store.Change{Table: store.TableRooms, Event: "sync", RoomID: roomID})
	go s.readWS(roomID, conn)
}

func (s *Server) readWS(roomID string, conn *websocket.Conn) {
	defer s.ws.Remove(roomID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected room_id=%s error=%v", roomID, err)
			return
		}
	}
}
