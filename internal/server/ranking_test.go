package server

import (
	"testing"

	"tutti-frutti/internal/config"
	"tutti-frutti/internal/db"
)

func seedRankingRoom(t *testing.T, srv *Server) (string, []db.Player, []db.Round) {
	t.Helper()
	room := &db.Room{ID: "room-1", InvitationCode: "AAAAA1", State: roomStatePlaying}
	if err := srv.store.CreateRoom(room); err != nil {
		t.Fatalf("create room: %v", err)
	}
	players := []db.Player{
		{ID: "p-ada", RoomID: room.ID, Name: "Ada", IsOrganizer: true},
		{ID: "p-ben", RoomID: room.ID, Name: "Ben"},
		{ID: "p-cleo", RoomID: room.ID, Name: "Cleo"},
	}
	for i := range players {
		if err := srv.store.CreatePlayer(&players[i]); err != nil {
			t.Fatalf("create player: %v", err)
		}
	}
	rounds := []db.Round{
		{ID: "r-1", RoomID: room.ID, Number: 1, Letter: "A", State: roundStateCompleted},
		{ID: "r-2", RoomID: room.ID, Number: 2, Letter: "B", State: roundStateScoring},
	}
	for i := range rounds {
		if err := srv.store.CreateRound(&rounds[i]); err != nil {
			t.Fatalf("create round: %v", err)
		}
	}
	return room.ID, players, rounds
}

func TestCumulativeRankingAcrossRounds(t *testing.T) {
	srv := New(nil, config.Default())
	roomID, _, _ := seedRankingRoom(t, srv)

	answers := []db.Answer{
		{ID: "a-1", RoundID: "r-1", PlayerID: "p-ada", CategoryIndex: 0, Text: "Ant", Points: 10},
		{ID: "a-2", RoundID: "r-1", PlayerID: "p-ben", CategoryIndex: 0, Text: "Asp", Points: 5},
		{ID: "a-3", RoundID: "r-2", PlayerID: "p-ben", CategoryIndex: 0, Text: "Bee", Points: 20},
		{ID: "a-4", RoundID: "r-2", PlayerID: "p-ada", CategoryIndex: 0, Text: "Boa", Points: 5},
	}
	if err := srv.store.UpsertAnswers(roomID, answers); err != nil {
		t.Fatalf("seed answers: %v", err)
	}

	entries, err := srv.cumulativeRanking(roomID)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "Ben" || entries[0].Total != 25 || entries[0].Position != 1 {
		t.Fatalf("unexpected first place: %+v", entries[0])
	}
	if entries[1].Name != "Ada" || entries[1].Total != 15 || entries[1].Position != 2 {
		t.Fatalf("unexpected second place: %+v", entries[1])
	}
	if entries[2].Name != "Cleo" || entries[2].Total != 0 || entries[2].Position != 3 {
		t.Fatalf("expected Cleo with zero points in last place: %+v", entries[2])
	}
}

func TestCumulativeRankingTiesKeepOrder(t *testing.T) {
	srv := New(nil, config.Default())
	roomID, _, _ := seedRankingRoom(t, srv)

	answers := []db.Answer{
		{ID: "a-1", RoundID: "r-1", PlayerID: "p-ada", CategoryIndex: 0, Text: "Ant", Points: 10},
		{ID: "a-2", RoundID: "r-1", PlayerID: "p-ben", CategoryIndex: 0, Text: "Asp", Points: 10},
		{ID: "a-3", RoundID: "r-1", PlayerID: "p-cleo", CategoryIndex: 0, Text: "Axe", Points: 10},
	}
	if err := srv.store.UpsertAnswers(roomID, answers); err != nil {
		t.Fatalf("seed answers: %v", err)
	}

	entries, err := srv.cumulativeRanking(roomID)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	if names[0] != "Ada" || names[1] != "Ben" || names[2] != "Cleo" {
		t.Fatalf("expected tied players in stable name order, got %v", names)
	}
	for i, entry := range entries {
		if entry.Position != i+1 {
			t.Fatalf("expected distinct consecutive positions, got %+v", entries)
		}
	}
}

func TestRoundResultIncludesEveryPlayer(t *testing.T) {
	srv := New(nil, config.Default())
	roomID, _, _ := seedRankingRoom(t, srv)

	answers := []db.Answer{
		{ID: "a-2", RoundID: "r-1", PlayerID: "p-ada", CategoryIndex: 1, Text: "Austin", Points: 5},
		{ID: "a-1", RoundID: "r-1", PlayerID: "p-ada", CategoryIndex: 0, Text: "Ant", Points: 10},
	}
	if err := srv.store.UpsertAnswers(roomID, answers); err != nil {
		t.Fatalf("seed answers: %v", err)
	}

	round, entries, err := srv.roundResult("r-1")
	if err != nil {
		t.Fatalf("round result: %v", err)
	}
	if round.ID != "r-1" {
		t.Fatalf("expected round r-1, got %s", round.ID)
	}
	if len(entries) != 3 {
		t.Fatalf("expected every player in the result, got %d", len(entries))
	}
	for _, entry := range entries {
		switch entry.PlayerID {
		case "p-ada":
			if entry.Total != 15 {
				t.Fatalf("expected Ada total 15, got %d", entry.Total)
			}
			if len(entry.Answers) != 2 || entry.Answers[0].CategoryIndex != 0 {
				t.Fatalf("expected answers in category order, got %+v", entry.Answers)
			}
		default:
			if entry.Total != 0 || len(entry.Answers) != 0 {
				t.Fatalf("expected empty entry for %s, got %+v", entry.PlayerID, entry)
			}
		}
	}
}
