// Package store is the room store: durable rows for rooms, players, rounds,
// and answers, with point reads, filtered updates, answer upserts, and a
// change-subscription primitive. The Postgres implementation is authoritative
// in production; the memory implementation backs tests and DB-less runs.
package store

import (
	"errors"

	"tutti-frutti/internal/db"
)

// ErrNotFound is returned by point reads that match no row.
var ErrNotFound = errors.New("not found")

type Store interface {
	CreateRoom(room *db.Room) error
	RoomByID(id string) (*db.Room, error)
	RoomByCode(code string) (*db.Room, error)
	UpdateRoom(roomID string, patch map[string]any) error

	CreatePlayer(player *db.Player) error
	PlayerByID(id string) (*db.Player, error)
	PlayersByRoom(roomID string) ([]db.Player, error)
	CountPlayers(roomID string) (int, error)
	SetPlayerReady(roomID, playerID string, ready bool) error
	ResetReady(roomID string) error

	CreateRound(round *db.Round) error
	RoundByID(id string) (*db.Round, error)
	CurrentRound(roomID string) (*db.Round, error)
	RoundsByRoom(roomID string) ([]db.Round, error)
	UpdateRound(roomID, roundID string, patch map[string]any) error

	UpsertAnswers(roomID string, answers []db.Answer) error
	AnswersByRound(roundID string) ([]db.Answer, error)
	AnswersByRounds(roundIDs []string) ([]db.Answer, error)
	SetAnswerPoints(roomID, answerID string, points int) error

	EventsByRoom(roomID string) ([]db.RoomEvent, error)

	Feed() *Changefeed
}
