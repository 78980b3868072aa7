package store

import (
	"encoding/json"
	"errors"
	"log"

	"tutti-frutti/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres persists rows through GORM and publishes a change event after
// every committed mutation, standing in for row-level change notification.
type Postgres struct {
	conn *gorm.DB
	feed *Changefeed
}

func NewPostgres(conn *gorm.DB) *Postgres {
	return &Postgres{
		conn: conn,
		feed: NewChangefeed(),
	}
}

func (p *Postgres) Feed() *Changefeed {
	return p.feed
}

func (p *Postgres) CreateRoom(room *db.Room) error {
	if err := p.conn.Create(room).Error; err != nil {
		return err
	}
	p.appendEvent(room.ID, "room_created", map[string]any{"code": room.InvitationCode})
	p.feed.Publish(Change{Table: TableRooms, Event: EventInsert, RoomID: room.ID})
	return nil
}

func (p *Postgres) RoomByID(id string) (*db.Room, error) {
	var room db.Room
	if err := p.conn.Where("id = ?", id).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (p *Postgres) RoomByCode(code string) (*db.Room, error) {
	var room db.Room
	if err := p.conn.Where("invitation_code = ?", code).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (p *Postgres) UpdateRoom(roomID string, patch map[string]any) error {
	result := p.conn.Model(&db.Room{}).Where("id = ?", roomID).Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	p.appendEvent(roomID, "room_updated", patchKeys(patch))
	p.feed.Publish(Change{Table: TableRooms, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (p *Postgres) CreatePlayer(player *db.Player) error {
	if err := p.conn.Create(player).Error; err != nil {
		return err
	}
	p.appendEvent(player.RoomID, "player_joined", map[string]any{"player_id": player.ID})
	p.feed.Publish(Change{Table: TablePlayers, Event: EventInsert, RoomID: player.RoomID})
	return nil
}

func (p *Postgres) PlayerByID(id string) (*db.Player, error) {
	var player db.Player
	if err := p.conn.Where("id = ?", id).First(&player).Error; err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (p *Postgres) PlayersByRoom(roomID string) ([]db.Player, error) {
	var players []db.Player
	err := p.conn.Where("room_id = ?", roomID).Order("name asc, id asc").Find(&players).Error
	return players, err
}

func (p *Postgres) CountPlayers(roomID string) (int, error) {
	var count int64
	err := p.conn.Model(&db.Player{}).Where("room_id = ?", roomID).Count(&count).Error
	return int(count), err
}

func (p *Postgres) SetPlayerReady(roomID, playerID string, ready bool) error {
	result := p.conn.Model(&db.Player{}).
		Where("id = ? AND room_id = ?", playerID, roomID).
		Update("is_ready", ready)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	p.feed.Publish(Change{Table: TablePlayers, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (p *Postgres) ResetReady(roomID string) error {
	err := p.conn.Model(&db.Player{}).Where("room_id = ?", roomID).Update("is_ready", false).Error
	if err != nil {
		return err
	}
	p.feed.Publish(Change{Table: TablePlayers, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (p *Postgres) CreateRound(round *db.Round) error {
	if err := p.conn.Create(round).Error; err != nil {
		return err
	}
	p.appendEvent(round.RoomID, "round_created", map[string]any{"number": round.Number})
	p.feed.Publish(Change{Table: TableRounds, Event: EventInsert, RoomID: round.RoomID})
	return nil
}

func (p *Postgres) RoundByID(id string) (*db.Round, error) {
	var round db.Round
	if err := p.conn.Where("id = ?", id).First(&round).Error; err != nil {
		return nil, translate(err)
	}
	return &round, nil
}

func (p *Postgres) CurrentRound(roomID string) (*db.Round, error) {
	var round db.Round
	err := p.conn.Where("room_id = ?", roomID).Order("number desc").First(&round).Error
	if err != nil {
		return nil, translate(err)
	}
	return &round, nil
}

func (p *Postgres) RoundsByRoom(roomID string) ([]db.Round, error) {
	var rounds []db.Round
	err := p.conn.Where("room_id = ?", roomID).Order("number asc").Find(&rounds).Error
	return rounds, err
}

func (p *Postgres) UpdateRound(roomID, roundID string, patch map[string]any) error {
	result := p.conn.Model(&db.Round{}).
		Where("id = ? AND room_id = ?", roundID, roomID).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	p.appendEvent(roomID, "round_updated", patchKeys(patch))
	p.feed.Publish(Change{Table: TableRounds, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (p *Postgres) UpsertAnswers(roomID string, answers []db.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	err := p.conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "round_id"},
			{Name: "player_id"},
			{Name: "category_index"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(&answers).Error
	if err != nil {
		return err
	}
	p.appendEvent(roomID, "answers_submitted", map[string]any{"count": len(answers)})
	p.feed.Publish(Change{Table: TableAnswers, Event: EventInsert, RoomID: roomID})
	return nil
}

func (p *Postgres) AnswersByRound(roundID string) ([]db.Answer, error) {
	var answers []db.Answer
	err := p.conn.Where("round_id = ?", roundID).
		Order("category_index asc, id asc").
		Find(&answers).Error
	return answers, err
}

func (p *Postgres) AnswersByRounds(roundIDs []string) ([]db.Answer, error) {
	if len(roundIDs) == 0 {
		return []db.Answer{}, nil
	}
	var answers []db.Answer
	err := p.conn.Where("round_id IN ?", roundIDs).
		Order("category_index asc, id asc").
		Find(&answers).Error
	return answers, err
}

func (p *Postgres) SetAnswerPoints(roomID, answerID string, points int) error {
	result := p.conn.Model(&db.Answer{}).Where("id = ?", answerID).Update("points", points)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	p.feed.Publish(Change{Table: TableAnswers, Event: EventUpdate, RoomID: roomID})
	return nil
}

func (p *Postgres) EventsByRoom(roomID string) ([]db.RoomEvent, error) {
	var events []db.RoomEvent
	err := p.conn.Where("room_id = ?", roomID).Order("created_at asc, id asc").Find(&events).Error
	return events, err
}

// appendEvent writes an audit row. Audit failures are logged, never surfaced;
// the ledger is diagnostic, not authoritative.
func (p *Postgres) appendEvent(roomID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	event := db.RoomEvent{
		RoomID:  roomID,
		Type:    eventType,
		Payload: data,
	}
	if err := p.conn.Create(&event).Error; err != nil {
		log.Printf("audit event failed room_id=%s type=%s error=%v", roomID, eventType, err)
	}
}

func patchKeys(patch map[string]any) map[string]any {
	keys := make([]string, 0, len(patch))
	for key := range patch {
		keys = append(keys, key)
	}
	return map[string]any{"columns": keys}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
