package server

import (
	"time"

	"tutti-frutti/internal/config"
	"tutti-frutti/internal/db"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func (s *Server) startGame(roomID string, categories []string) (*db.Round, error) {
	cleaned, err := validateCategories(categories)
	if err != nil {
		return nil, err
	}
	room, err := s.store.RoomByID(roomID)
	if err != nil {
		return nil, storeFailure("room not found", err)
	}
	if room.State != roomStateLobby {
		return nil, preconditionError("the game has already started")
	}
	// Read at call time; a join racing this count is accepted.
	count, err := s.store.CountPlayers(roomID)
	if err != nil {
		return nil, storeError("could not count players", err)
	}
	if count < s.cfg.MinPlayers {
		return nil, preconditionError("at least %d players are required", s.cfg.MinPlayers)
	}

	encoded, err := db.EncodeCategories(cleaned)
	if err != nil {
		return nil, storeError("could not start the game", err)
	}
	patch := map[string]any{
		"categories": datatypes.JSON(encoded),
		"state":      roomStatePlaying,
	}
	if err := s.store.UpdateRoom(roomID, patch); err != nil {
		return nil, storeFailure("could not start the game", err)
	}

	round := &db.Round{
		ID:     uuid.NewString(),
		RoomID: roomID,
		Number: 1,
		Letter: newRoundLetter(),
		State:  roundStateWriting,
	}
	if err := s.store.CreateRound(round); err != nil {
		return nil, storeError("could not create the first round", err)
	}
	return round, nil
}

// submitAnswers upserts one answer row per category and marks the player
// ready. Re-submitting before the round advances overwrites in place.
func (s *Server) submitAnswers(roomID, roundID, playerID string, answers []string) error {
	cleaned, err := validateAnswers(answers)
	if err != nil {
		return err
	}
	round, err := s.store.RoundByID(roundID)
	if err != nil {
		return storeFailure("round not found", err)
	}
	if round.RoomID != roomID {
		return preconditionError("round does not belong to this room")
	}
	if round.State != roundStateWriting {
		return preconditionError("answers are closed for this round")
	}
	player, err := s.store.PlayerByID(playerID)
	if err != nil {
		return storeFailure("player not found", err)
	}
	if player.RoomID != roomID {
		return preconditionError("player does not belong to this room")
	}

	rows := make([]db.Answer, 0, len(cleaned))
	for index, text := range cleaned {
		rows = append(rows, db.Answer{
			ID:            uuid.NewString(),
			RoundID:       roundID,
			PlayerID:      playerID,
			CategoryIndex: index,
			Text:          text,
		})
	}
	if err := s.store.UpsertAnswers(roomID, rows); err != nil {
		return storeError("could not save the answers", err)
	}
	if err := s.store.SetPlayerReady(roomID, playerID, true); err != nil {
		return storeFailure("could not mark the player ready", err)
	}
	return nil
}

// rerollLetter changes the round letter. The reroll window is a client-side
// timer by default; REROLL_ENFORCEMENT=server makes this check the round's
// age as well. The new letter may repeat the old one.
func (s *Server) rerollLetter(roomID, roundID, playerID string) (string, error) {
	organizer, err := s.requireOrganizer(playerID)
	if err != nil {
		return "", err
	}
	if organizer.RoomID != roomID {
		return "", forbiddenError("only the organizer can do this")
	}
	round, err := s.store.RoundByID(roundID)
	if err != nil {
		return "", storeFailure("round not found", err)
	}
	if round.RoomID != roomID {
		return "", preconditionError("round does not belong to this room")
	}
	if round.State != roundStateWriting {
		return "", preconditionError("the letter can no longer change")
	}
	if s.cfg.RerollEnforcement == config.RerollServerEnforced {
		window := time.Duration(s.cfg.RerollWindowMillis) * time.Millisecond
		if time.Since(round.CreatedAt) > window {
			return "", preconditionError("the letter change window has closed")
		}
	}

	letter := newRoundLetter()
	if err := s.store.UpdateRound(roomID, roundID, map[string]any{"letter": letter}); err != nil {
		return "", storeFailure("could not change the letter", err)
	}
	return letter, nil
}

// endRound moves the round to scoring. The organizer may end it with players
// still unready; readiness is advisory.
func (s *Server) endRound(roundID, playerID string) (*db.Round, error) {
	organizer, err := s.requireOrganizer(playerID)
	if err != nil {
		return nil, err
	}
	round, err := s.store.RoundByID(roundID)
	if err != nil {
		return nil, storeFailure("round not found", err)
	}
	if round.RoomID != organizer.RoomID {
		return nil, forbiddenError("only the organizer can do this")
	}
	if round.State != roundStateWriting {
		return nil, preconditionError("the round is not being written")
	}
	if err := s.store.UpdateRound(round.RoomID, roundID, map[string]any{"state": roundStateScoring}); err != nil {
		return nil, storeFailure("could not end the round", err)
	}
	round.State = roundStateScoring
	return round, nil
}

func (s *Server) startNewRound(roomID, playerID string) (*db.Round, error) {
	organizer, err := s.requireOrganizer(playerID)
	if err != nil {
		return nil, err
	}
	if organizer.RoomID != roomID {
		return nil, forbiddenError("only the organizer can do this")
	}
	current, err := s.store.CurrentRound(roomID)
	if err != nil {
		return nil, storeFailure("the game has not started", err)
	}
	if current.State != roundStateCompleted {
		return nil, preconditionError("the current round is still in progress")
	}

	round := &db.Round{
		ID:     uuid.NewString(),
		RoomID: roomID,
		Number: current.Number + 1,
		Letter: newRoundLetter(),
		State:  roundStateWriting,
	}
	if err := s.store.CreateRound(round); err != nil {
		return nil, storeError("could not create the round", err)
	}
	if err := s.store.UpdateRoom(roomID, map[string]any{"state": roomStatePlaying}); err != nil {
		return nil, storeFailure("could not resume the game", err)
	}
	if err := s.store.ResetReady(roomID); err != nil {
		return nil, storeError("could not reset player readiness", err)
	}
	return round, nil
}

func (s *Server) finishGame(roomID, playerID string) error {
	organizer, err := s.requireOrganizer(playerID)
	if err != nil {
		return err
	}
	if organizer.RoomID != roomID {
		return forbiddenError("only the organizer can do this")
	}
	if err := s.store.UpdateRoom(roomID, map[string]any{"state": roomStateFinished}); err != nil {
		return storeFailure("could not finish the game", err)
	}
	return nil
}
