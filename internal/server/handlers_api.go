package server

import (
	"log"
	"net/http"
)

type createRoomRequest struct {
	OrganizerName string `json:"organizer_name"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type startRequest struct {
	Categories []string `json:"categories"`
}

type answersRequest struct {
	RoundID  string   `json:"round_id"`
	PlayerID string   `json:"player_id"`
	Answers  []string `json:"answers"`
}

type rerollRequest struct {
	RoomID   string `json:"room_id"`
	RoundID  string `json:"round_id"`
	PlayerID string `json:"player_id"`
}

type endRoundRequest struct {
	RoundID  string `json:"round_id"`
	PlayerID string `json:"player_id"`
}

type scoresRequest struct {
	Assignments []scoreAssignment `json:"assignments"`
}

type finalizeRequest struct {
	RoundID  string `json:"round_id"`
	PlayerID string `json:"player_id"`
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	_ = readJSON(r.Body, &req)
	room, organizer, err := s.createRoom(req.OrganizerName)
	if err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("room created room_id=%s join_code=%s organizer_id=%s", room.ID, room.InvitationCode, organizer.ID)
	if s.sessions != nil {
		s.sessions.SetPlayer(w, r, organizer.ID, room.ID)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"room_id":   room.ID,
		"join_code": room.InvitationCode,
		"player_id": organizer.ID,
	})
}

func (s *Server) handleRoomSubroutes(w http.ResponseWriter, r *http.Request) {
	roomID, action, extra, ok := parseRoomPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		switch action {
		case "":
			s.handleGetRoom(w, r, roomID)
		case "view":
			s.handleView(w, r, roomID)
		case "results":
			s.handleRoundResults(w, r, roomID, extra)
		case "ranking":
			s.handleRanking(w, r, roomID)
		case "events":
			s.handleEvents(w, r, roomID)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "join":
			s.handleJoinRoom(w, r, roomID)
		case "start":
			s.handleStartGame(w, r, roomID)
		case "answers":
			s.handleSubmitAnswers(w, r, roomID)
		case "end-round":
			s.handleEndRound(w, r, roomID)
		case "scores":
			s.handleAssignScores(w, r, roomID)
		case "finalize":
			s.handleFinalize(w, r, roomID)
		case "next-round":
			s.handleNextRound(w, r, roomID)
		case "finish":
			s.handleFinishGame(w, r, roomID)
		default:
			http.NotFound(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request, roomID string) {
	room, err := s.store.RoomByID(roomID)
	if err != nil {
		writeOpError(w, storeFailure("room not found", err))
		return
	}
	payload, err := s.snapshot(room)
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// handleView answers "where should this client be looking right now".
func (s *Server) handleView(w http.ResponseWriter, r *http.Request, roomID string) {
	room, err := s.store.RoomByID(roomID)
	if err != nil {
		writeOpError(w, storeFailure("room not found", err))
		return
	}
	playerID := s.resolvePlayerID(w, r, room.ID)

	roundID := ""
	roundState := ""
	if round, err := s.store.CurrentRound(room.ID); err == nil {
		roundID = round.ID
		roundState = round.State
	}

	isOrganizer := false
	if playerID != "" {
		if player, err := s.store.PlayerByID(playerID); err == nil && player.RoomID == room.ID {
			isOrganizer = player.IsOrganizer
		}
	}

	path, navigate := resolveView(room.State, roundState, isOrganizer, room.ID, roundID, playerID)
	writeJSON(w, http.StatusOK, map[string]any{
		"path":     path,
		"navigate": navigate,
	})
}

// handleJoinRoom accepts the invitation code as the path segment.
func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request, code string) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	room, player, err := s.joinRoom(code, req.Name)
	if err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("player joined room_id=%s player_id=%s player_name=%s", room.ID, player.ID, player.Name)
	if s.sessions != nil {
		s.sessions.SetPlayer(w, r, player.ID, room.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_id":   room.ID,
		"join_code": room.InvitationCode,
		"player_id": player.ID,
	})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, roomID string) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "categories are required")
		return
	}
	round, err := s.startGame(roomID, req.Categories)
	if err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("game started room_id=%s round_id=%s letter=%s", roomID, round.ID, round.Letter)
	writeJSON(w, http.StatusOK, map[string]any{
		"round_id": round.ID,
		"number":   round.Number,
		"letter":   round.Letter,
	})
}

func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request, roomID string) {
	var req answersRequest
	if err := readJSON(r.Body, &req); err != nil || req.RoundID == "" || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "round_id, player_id, and answers are required")
		return
	}
	if err := s.submitAnswers(roomID, req.RoundID, req.PlayerID, req.Answers); err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("answers submitted room_id=%s round_id=%s player_id=%s", roomID, req.RoundID, req.PlayerID)
	writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}

// handleReroll is the narrow endpoint shape the original exposed: a body
// with all three ids and a {success, error} response.
func (s *Server) handleReroll(w http.ResponseWriter, r *http.Request) {
	var req rerollRequest
	if err := readJSON(r.Body, &req); err != nil || req.RoomID == "" || req.RoundID == "" || req.PlayerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "room_id, round_id, and player_id are required",
		})
		return
	}
	letter, err := s.rerollLetter(req.RoomID, req.RoundID, req.PlayerID)
	if err != nil {
		status := http.StatusForbidden
		if kind, ok := errorKind(err); ok {
			switch kind {
			case kindValidation:
				status = http.StatusBadRequest
			case kindNotFound:
				status = http.StatusNotFound
			case kindPrecondition:
				status = http.StatusConflict
			case kindStore:
				status = http.StatusInternalServerError
			}
		}
		writeJSON(w, status, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	log.Printf("letter rerolled room_id=%s round_id=%s letter=%s", req.RoomID, req.RoundID, letter)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"letter":  letter,
	})
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request, roomID string) {
	var req endRoundRequest
	if err := readJSON(r.Body, &req); err != nil || req.RoundID == "" {
		writeError(w, http.StatusBadRequest, "round_id and player_id are required")
		return
	}
	round, err := s.endRound(req.RoundID, req.PlayerID)
	if err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("round ended room_id=%s round_id=%s", roomID, round.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"round_id": round.ID,
		"state":    round.State,
	})
}

func (s *Server) handleAssignScores(w http.ResponseWriter, r *http.Request, roomID string) {
	var req scoresRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "scores are required")
		return
	}
	if err := s.assignScores(req.Assignments); err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("scores assigned room_id=%s count=%d", roomID, len(req.Assignments))
	writeJSON(w, http.StatusOK, map[string]any{"scored": len(req.Assignments)})
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request, roomID string) {
	var req finalizeRequest
	if err := readJSON(r.Body, &req); err != nil || req.RoundID == "" {
		writeError(w, http.StatusBadRequest, "round_id and player_id are required")
		return
	}
	if err := s.finalizeScoring(roomID, req.RoundID, req.PlayerID); err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("scoring finalized room_id=%s round_id=%s", roomID, req.RoundID)
	writeJSON(w, http.StatusOK, map[string]any{"state": roomStateResults})
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request, roomID string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	round, err := s.startNewRound(roomID, req.PlayerID)
	if err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("round started room_id=%s round_id=%s number=%d letter=%s", roomID, round.ID, round.Number, round.Letter)
	writeJSON(w, http.StatusOK, map[string]any{
		"round_id": round.ID,
		"number":   round.Number,
		"letter":   round.Letter,
	})
}

func (s *Server) handleFinishGame(w http.ResponseWriter, r *http.Request, roomID string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	if err := s.finishGame(roomID, req.PlayerID); err != nil {
		writeOpError(w, err)
		return
	}
	log.Printf("game finished room_id=%s", roomID)
	writeJSON(w, http.StatusOK, map[string]any{"state": roomStateFinished})
}

func (s *Server) handleRoundResults(w http.ResponseWriter, r *http.Request, roomID, roundID string) {
	if roundID == "" {
		http.NotFound(w, r)
		return
	}
	round, entries, err := s.roundResult(roundID)
	if err != nil {
		writeOpError(w, err)
		return
	}
	if round.RoomID != roomID {
		writeError(w, http.StatusNotFound, "round not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"round_id": round.ID,
		"number":   round.Number,
		"letter":   round.Letter,
		"state":    round.State,
		"players":  entries,
	})
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request, roomID string) {
	if _, err := s.store.RoomByID(roomID); err != nil {
		writeOpError(w, storeFailure("room not found", err))
		return
	}
	entries, err := s.cumulativeRanking(roomID)
	if err != nil {
		writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_id": roomID,
		"ranking": entries,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, roomID string) {
	if _, err := s.store.RoomByID(roomID); err != nil {
		writeOpError(w, storeFailure("room not found", err))
		return
	}
	records, err := s.store.EventsByRoom(roomID)
	if err != nil {
		writeOpError(w, storeError("could not load events", err))
		return
	}
	events := make([]map[string]any, 0, len(records))
	for _, record := range records {
		events = append(events, map[string]any{
			"id":         record.ID,
			"type":       record.Type,
			"payload":    record.Payload,
			"created_at": record.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_id": roomID,
		"events":  events,
	})
}
