package server

import (
	"errors"

	"tutti-frutti/internal/db"
	"tutti-frutti/internal/store"
)

// snapshot assembles the full client view of a room from current rows.
// Subscribers call this after every change notification instead of trusting
// event payloads.
func (s *Server) snapshot(room *db.Room) (map[string]any, error) {
	players, err := s.store.PlayersByRoom(room.ID)
	if err != nil {
		return nil, storeError("could not load players", err)
	}

	readyCount := 0
	playerViews := make([]map[string]any, 0, len(players))
	for _, player := range players {
		if player.IsReady {
			readyCount++
		}
		playerViews = append(playerViews, map[string]any{
			"id":           player.ID,
			"name":         player.Name,
			"is_organizer": player.IsOrganizer,
			"is_ready":     player.IsReady,
		})
	}

	categories := room.CategoryList()
	if categories == nil {
		categories = []string{}
	}

	payload := map[string]any{
		"room_id":      room.ID,
		"join_code":    room.InvitationCode,
		"state":        room.State,
		"organizer_id": room.OrganizerID,
		"categories":   categories,
		"players":      playerViews,
		"player_count": len(players),
		"ready_count":  readyCount,
	}

	round, err := s.store.CurrentRound(room.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, storeError("could not load the current round", err)
		}
	} else {
		payload["round"] = map[string]any{
			"id":         round.ID,
			"number":     round.Number,
			"letter":     round.Letter,
			"state":      round.State,
			"created_at": round.CreatedAt,
		}
	}
	return payload, nil
}
