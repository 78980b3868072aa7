package server

type scoreAssignment struct {
	AnswerID string `json:"answer_id"`
	Points   int    `json:"points"`
	PlayerID string `json:"player_id"`
}

// assignScores writes points for a batch of answers. Authorization uses the
// first assignment's player id as representative of the batch. The writes
// are not one transaction; a failure partway leaves earlier scores in place.
func (s *Server) assignScores(assignments []scoreAssignment) error {
	if len(assignments) == 0 {
		return validationError("at least one score is required")
	}
	for _, assignment := range assignments {
		if assignment.AnswerID == "" {
			return validationError("answer id is required")
		}
		if assignment.Points < 0 {
			return validationError("points cannot be negative")
		}
	}
	organizer, err := s.requireOrganizer(assignments[0].PlayerID)
	if err != nil {
		return err
	}
	for _, assignment := range assignments {
		if err := s.store.SetAnswerPoints(organizer.RoomID, assignment.AnswerID, assignment.Points); err != nil {
			return storeFailure("could not save all scores", err)
		}
	}
	return nil
}

// finalizeScoring completes the round, shows the result screen, and clears
// readiness for the next round.
func (s *Server) finalizeScoring(roomID, roundID, playerID string) error {
	organizer, err := s.requireOrganizer(playerID)
	if err != nil {
		return err
	}
	if organizer.RoomID != roomID {
		return forbiddenError("only the organizer can do this")
	}
	round, err := s.store.RoundByID(roundID)
	if err != nil {
		return storeFailure("round not found", err)
	}
	if round.RoomID != roomID {
		return preconditionError("round does not belong to this room")
	}
	if round.State != roundStateScoring {
		return preconditionError("the round is not being scored")
	}

	if err := s.store.UpdateRound(roomID, roundID, map[string]any{"state": roundStateCompleted}); err != nil {
		return storeFailure("could not complete the round", err)
	}
	if err := s.store.UpdateRoom(roomID, map[string]any{"state": roomStateResults}); err != nil {
		return storeFailure("could not update the room", err)
	}
	if err := s.store.ResetReady(roomID); err != nil {
		return storeError("could not reset player readiness", err)
	}
	return nil
}
