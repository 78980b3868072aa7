package server

import (
	"net/http"
	"testing"
)

// Every organizer-only operation must reject a regular player outright,
// regardless of what state the room is in.
func TestOrganizerOnlyOperations(t *testing.T) {
	ts := newTestServer(t)

	roomID, joinCode, organizerID := createRoom(t, ts)
	playerID := joinPlayer(t, ts, joinCode, "Ben")
	roundID := startGame(t, ts, roomID)

	cases := []struct {
		name    string
		path    string
		payload map[string]any
	}{
		{
			name: "reroll",
			path: "/api/rounds/reroll",
			payload: map[string]any{
				"room_id": roomID, "round_id": roundID, "player_id": playerID,
			},
		},
		{
			name: "end round",
			path: "/api/rooms/" + roomID + "/end-round",
			payload: map[string]any{
				"round_id": roundID, "player_id": playerID,
			},
		},
		{
			name: "assign scores",
			path: "/api/rooms/" + roomID + "/scores",
			payload: map[string]any{
				"assignments": []map[string]any{
					{"answer_id": "some-answer", "points": 10, "player_id": playerID},
				},
			},
		},
		{
			name: "finalize",
			path: "/api/rooms/" + roomID + "/finalize",
			payload: map[string]any{
				"round_id": roundID, "player_id": playerID,
			},
		},
		{
			name: "next round",
			path: "/api/rooms/" + roomID + "/next-round",
			payload: map[string]any{
				"player_id": playerID,
			},
		},
		{
			name: "finish",
			path: "/api/rooms/" + roomID + "/finish",
			payload: map[string]any{
				"player_id": playerID,
			},
		},
	}
	for _, tc := range cases {
		resp := doRequest(t, ts, http.MethodPost, tc.path, tc.payload)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s: expected status %d, got %d", tc.name, http.StatusForbidden, resp.StatusCode)
		}
	}

	// The organizer of another room is still a stranger here.
	otherRoomID, otherJoinCode, otherOrganizerID := createRoom(t, ts)
	joinPlayer(t, ts, otherJoinCode, "Cleo")
	otherRoundID := startGame(t, ts, otherRoomID)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/end-round", map[string]any{
		"round_id": roundID, "player_id": otherOrganizerID,
	})
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected a foreign organizer to be rejected")
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rounds/reroll", map[string]any{
		"room_id": roomID, "round_id": otherRoundID, "player_id": organizerID,
	})
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected a cross-room reroll to be rejected")
	}
}

func TestUnknownPlayerIsRejected(t *testing.T) {
	ts := newTestServer(t)

	roomID, joinCode, _ := createRoom(t, ts)
	joinPlayer(t, ts, joinCode, "Ben")
	roundID := startGame(t, ts, roomID)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/end-round", map[string]any{
		"round_id":  roundID,
		"player_id": "00000000-0000-0000-0000-000000000001",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
