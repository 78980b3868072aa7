package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID             string         `gorm:"primaryKey;size:36"`
	InvitationCode string         `gorm:"size:6;uniqueIndex;not null"`
	OrganizerID    string         `gorm:"size:36;not null"`
	Categories     datatypes.JSON `gorm:"type:jsonb;not null"`
	State          string         `gorm:"size:32;not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	Players        []Player
	Rounds         []Round
	Events         []RoomEvent
}

type Player struct {
	ID          string    `gorm:"primaryKey;size:36"`
	RoomID      string    `gorm:"size:36;index;not null"`
	Name        string    `gorm:"size:20;not null"`
	IsOrganizer bool      `gorm:"not null;default:false"`
	IsReady     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	Answers     []Answer
}

type Round struct {
	ID        string    `gorm:"primaryKey;size:36"`
	RoomID    string    `gorm:"size:36;index;not null;uniqueIndex:idx_rounds_room_number"`
	Number    int       `gorm:"not null;uniqueIndex:idx_rounds_room_number"`
	Letter    string    `gorm:"size:1;not null"`
	State     string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Answers   []Answer
}

type Answer struct {
	ID            string    `gorm:"primaryKey;size:36"`
	RoundID       string    `gorm:"size:36;index;not null;uniqueIndex:idx_answers_round_player_category"`
	PlayerID      string    `gorm:"size:36;index;not null;uniqueIndex:idx_answers_round_player_category"`
	CategoryIndex int       `gorm:"not null;uniqueIndex:idx_answers_round_player_category"`
	Text          string    `gorm:"size:30;not null"`
	Points        int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

type RoomEvent struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    string         `gorm:"size:36;index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	PlayerID  string    `gorm:"size:36"`
	RoomID    string    `gorm:"size:36"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
