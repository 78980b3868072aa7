package store

import "sync"

// Change describes one committed row mutation. Delivery is best-effort and
// unordered; subscribers are expected to re-read current rows rather than
// trust the envelope.
type Change struct {
	Table  string `json:"table"`
	Event  string `json:"event"`
	RoomID string `json:"room_id"`
}

const (
	TableRooms   = "rooms"
	TablePlayers = "players"
	TableRounds  = "rounds"
	TableAnswers = "answers"
)

const (
	EventInsert = "insert"
	EventUpdate = "update"
)

// Changefeed fans committed changes out to room-filtered subscribers.
type Changefeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscriber
}

type subscriber struct {
	roomID string
	ch     chan Change
}

func NewChangefeed() *Changefeed {
	return &Changefeed{
		nextID: 1,
		subs:   make(map[int]subscriber),
	}
}

// Subscribe registers interest in changes for one room. The returned cancel
// func must be called when the subscriber goes away.
func (f *Changefeed) Subscribe(roomID string) (<-chan Change, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	ch := make(chan Change, 16)
	f.subs[id] = subscriber{roomID: roomID, ch: ch}
	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

// Publish delivers a change to every subscriber watching its room. A slow
// subscriber with a full buffer misses the event; it will catch up on its
// next re-read.
func (f *Changefeed) Publish(change Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.roomID != change.RoomID {
			continue
		}
		select {
		case sub.ch <- change:
		default:
		}
	}
}
