package server

import (
	"sort"

	"tutti-frutti/internal/db"
)

type answerView struct {
	AnswerID      string `json:"answer_id"`
	CategoryIndex int    `json:"category_index"`
	Text          string `json:"text"`
	Points        int    `json:"points"`
}

type roundResultEntry struct {
	PlayerID string       `json:"player_id"`
	Name     string       `json:"name"`
	Total    int          `json:"total"`
	Answers  []answerView `json:"answers"`
}

type rankingEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	Position int    `json:"position"`
}

// roundResult sums the round's answer ledger per player. Every player in the
// room appears, including those who scored nothing; answers keep category
// index order with answer id as the tie-break.
func (s *Server) roundResult(roundID string) (*db.Round, []roundResultEntry, error) {
	round, err := s.store.RoundByID(roundID)
	if err != nil {
		return nil, nil, storeFailure("round not found", err)
	}
	players, err := s.store.PlayersByRoom(round.RoomID)
	if err != nil {
		return nil, nil, storeError("could not load players", err)
	}
	answers, err := s.store.AnswersByRound(roundID)
	if err != nil {
		return nil, nil, storeError("could not load answers", err)
	}

	byPlayer := make(map[string][]answerView, len(players))
	totals := make(map[string]int, len(players))
	for _, answer := range answers {
		byPlayer[answer.PlayerID] = append(byPlayer[answer.PlayerID], answerView{
			AnswerID:      answer.ID,
			CategoryIndex: answer.CategoryIndex,
			Text:          answer.Text,
			Points:        answer.Points,
		})
		totals[answer.PlayerID] += answer.Points
	}

	entries := make([]roundResultEntry, 0, len(players))
	for _, player := range players {
		views := byPlayer[player.ID]
		if views == nil {
			views = []answerView{}
		}
		entries = append(entries, roundResultEntry{
			PlayerID: player.ID,
			Name:     player.Name,
			Total:    totals[player.ID],
			Answers:  views,
		})
	}
	return round, entries, nil
}

// cumulativeRanking totals every answer linked to the room across all
// rounds. Unscored answers contribute zero. Ties keep their prior order and
// still receive distinct consecutive positions.
func (s *Server) cumulativeRanking(roomID string) ([]rankingEntry, error) {
	players, err := s.store.PlayersByRoom(roomID)
	if err != nil {
		return nil, storeError("could not load players", err)
	}
	rounds, err := s.store.RoundsByRoom(roomID)
	if err != nil {
		return nil, storeError("could not load rounds", err)
	}
	roundIDs := make([]string, 0, len(rounds))
	for _, round := range rounds {
		roundIDs = append(roundIDs, round.ID)
	}
	answers, err := s.store.AnswersByRounds(roundIDs)
	if err != nil {
		return nil, storeError("could not load answers", err)
	}

	totals := make(map[string]int, len(players))
	for _, player := range players {
		totals[player.ID] = 0
	}
	for _, answer := range answers {
		if _, ok := totals[answer.PlayerID]; ok {
			totals[answer.PlayerID] += answer.Points
		}
	}

	entries := make([]rankingEntry, 0, len(players))
	for _, player := range players {
		entries = append(entries, rankingEntry{
			PlayerID: player.ID,
			Name:     player.Name,
			Total:    totals[player.ID],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}
