package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"tutti-frutti/internal/db"

	"gorm.io/datatypes"
)

// Memory keeps all rows in process. It mirrors the Postgres store's
// semantics closely enough for tests and for running without a database:
// same filtered updates, same upsert key, same change events.
type Memory struct {
	mu      sync.Mutex
	rooms   map[string]*db.Room
	players map[string]*db.Player
	rounds  map[string]*db.Round
	answers map[string]*db.Answer
	events  map[string][]db.RoomEvent
	nextEv  uint
	feed    *Changefeed
}

func NewMemory() *Memory {
	return &Memory{
		rooms:   make(map[string]*db.Room),
		players: make(map[string]*db.Player),
		rounds:  make(map[string]*db.Round),
		answers: make(map[string]*db.Answer),
		events:  make(map[string][]db.RoomEvent),
		nextEv:  1,
		feed:    NewChangefeed(),
	}
}

func (m *Memory) Feed() *Changefeed {
	return m.feed
}

func (m *Memory) CreateRoom(room *db.Room) error {
	m.mu.Lock()
	if _, exists := m.rooms[room.ID]; exists {
		m.mu.Unlock()
		return fmt.Errorf("room %s already exists", room.ID)
	}
	now := timeNowUTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	copied := *room
	m.rooms[room.ID] = &copied
	m.appendEvent(room.ID, "room_created")
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TableRooms, Event: EventInsert, RoomID: room.ID})
	return nil
}

func (m *Memory) RoomByID(id string) (*db.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (m *Memory) RoomByCode(code string) (*db.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.rooms {
		if room.InvitationCode == code {
			copied := *room
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateRoom(roomID string, patch map[string]any) error {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	for column, value := range patch {
		switch column {
		case "state":
			room.State, _ = value.(string)
		case "organizer_id":
			room.OrganizerID, _ = value.(string)
		case "categories":
			switch raw := value.(type) {
			case datatypes.JSON:
				room.Categories = raw
			case []byte:
				room.Categories = raw
			}
		}
	}
	room.UpdatedAt = timeNowUTC()
	m.appendEvent(roomID, "room_updated")
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TableRooms, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (m *Memory) CreatePlayer(player *db.Player) error {
	m.mu.Lock()
	now := timeNowUTC()
	player.CreatedAt = now
	player.UpdatedAt = now
	copied := *player
	m.players[player.ID] = &copied
	m.appendEvent(player.RoomID, "player_joined")
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TablePlayers, Event: EventInsert, RoomID: player.RoomID})
	return nil
}

func (m *Memory) PlayerByID(id string) (*db.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	player, ok := m.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *player
	return &copied, nil
}

func (m *Memory) PlayersByRoom(roomID string) ([]db.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := make([]db.Player, 0)
	for _, player := range m.players {
		if player.RoomID == roomID {
			players = append(players, *player)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (m *Memory) CountPlayers(roomID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, player := range m.players {
		if player.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (m *Memory) SetPlayerReady(roomID, playerID string, ready bool) error {
	m.mu.Lock()
	player, ok := m.players[playerID]
	if !ok || player.RoomID != roomID {
		m.mu.Unlock()
		return ErrNotFound
	}
	player.IsReady = ready
	player.UpdatedAt = timeNowUTC()
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TablePlayers, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (m *Memory) ResetReady(roomID string) error {
	m.mu.Lock()
	now := timeNowUTC()
	for _, player := range m.players {
		if player.RoomID == roomID {
			player.IsReady = false
			player.UpdatedAt = now
		}
	}
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TablePlayers, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (m *Memory) CreateRound(round *db.Round) error {
	m.mu.Lock()
	for _, existing := range m.rounds {
		if existing.RoomID == round.RoomID && existing.Number == round.Number {
			m.mu.Unlock()
			return fmt.Errorf("round %d already exists in room %s", round.Number, round.RoomID)
		}
	}
	now := timeNowUTC()
	round.CreatedAt = now
	round.UpdatedAt = now
	copied := *round
	m.rounds[round.ID] = &copied
	m.appendEvent(round.RoomID, "round_created")
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TableRounds, Event: EventInsert, RoomID: round.RoomID})
	return nil
}

func (m *Memory) RoundByID(id string) (*db.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	round, ok := m.rounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *round
	return &copied, nil
}

func (m *Memory) CurrentRound(roomID string) (*db.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var current *db.Round
	for _, round := range m.rounds {
		if round.RoomID != roomID {
			continue
		}
		if current == nil || round.Number > current.Number {
			current = round
		}
	}
	if current == nil {
		return nil, ErrNotFound
	}
	copied := *current
	return &copied, nil
}

func (m *Memory) RoundsByRoom(roomID string) ([]db.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rounds := make([]db.Round, 0)
	for _, round := range m.rounds {
		if round.RoomID == roomID {
			rounds = append(rounds, *round)
		}
	}
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].Number < rounds[j].Number
	})
	return rounds, nil
}

func (m *Memory) UpdateRound(roomID, roundID string, patch map[string]any) error {
	m.mu.Lock()
	round, ok := m.rounds[roundID]
	if !ok || round.RoomID != roomID {
		m.mu.Unlock()
		return ErrNotFound
	}
	for column, value := range patch {
		switch column {
		case "state":
			round.State, _ = value.(string)
		case "letter":
			round.Letter, _ = value.(string)
		}
	}
	round.UpdatedAt = timeNowUTC()
	m.appendEvent(roomID, "round_updated")
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TableRounds, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (m *Memory) UpsertAnswers(roomID string, answers []db.Answer) error {
	m.mu.Lock()
	now := timeNowUTC()
	for _, answer := range answers {
		existing := m.findAnswer(answer.RoundID, answer.PlayerID, answer.CategoryIndex)
		if existing != nil {
			existing.Text = answer.Text
			existing.UpdatedAt = now
			continue
		}
		answer.CreatedAt = now
		answer.UpdatedAt = now
		copied := answer
		m.answers[answer.ID] = &copied
	}
	m.appendEvent(roomID, "answers_submitted")
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TableAnswers, Event: EventInsert, RoomID: roomID})
	return nil
}

func (m *Memory) findAnswer(roundID, playerID string, categoryIndex int) *db.Answer {
	for _, answer := range m.answers {
		if answer.RoundID == roundID && answer.PlayerID == playerID && answer.CategoryIndex == categoryIndex {
			return answer
		}
	}
	return nil
}

func (m *Memory) AnswersByRound(roundID string) ([]db.Answer, error) {
	return m.AnswersByRounds([]string{roundID})
}

func (m *Memory) AnswersByRounds(roundIDs []string) ([]db.Answer, error) {
	wanted := make(map[string]struct{}, len(roundIDs))
	for _, id := range roundIDs {
		wanted[id] = struct{}{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	answers := make([]db.Answer, 0)
	for _, answer := range m.answers {
		if _, ok := wanted[answer.RoundID]; ok {
			answers = append(answers, *answer)
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		if answers[i].CategoryIndex != answers[j].CategoryIndex {
			return answers[i].CategoryIndex < answers[j].CategoryIndex
		}
		return answers[i].ID < answers[j].ID
	})
	return answers, nil
}

func (m *Memory) SetAnswerPoints(roomID, answerID string, points int) error {
	m.mu.Lock()
	answer, ok := m.answers[answerID]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	answer.Points = points
	answer.UpdatedAt = timeNowUTC()
	m.mu.Unlock()
	m.feed.Publish(Change{Table: TableAnswers, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (m *Memory) EventsByRoom(roomID string) ([]db.RoomEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.events[roomID]
	copied := make([]db.RoomEvent, len(events))
	copy(copied, events)
	return copied, nil
}

// appendEvent records an audit row. Caller holds the mutex.
func (m *Memory) appendEvent(roomID, eventType string) {
	m.events[roomID] = append(m.events[roomID], db.RoomEvent{
		ID:        m.nextEv,
		RoomID:    roomID,
		Type:      eventType,
		Payload:   []byte("{}"),
		CreatedAt: timeNowUTC(),
	})
	m.nextEv++
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
