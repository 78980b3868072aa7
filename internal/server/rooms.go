package server

import (
	"strings"

	"tutti-frutti/internal/db"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const defaultOrganizerName = "Organizer"

// createRoom creates the room, the organizing player, and then points the
// room at its organizer. Room and player are mutually referential, so the
// room starts with a nil-UUID sentinel organizer. The three steps are not
// one transaction; a failure partway through leaves an orphaned room behind.
func (s *Server) createRoom(organizerName string) (*db.Room, *db.Player, error) {
	name := organizerName
	if strings.TrimSpace(name) == "" {
		name = defaultOrganizerName
	}
	name, err := validateName(name)
	if err != nil {
		return nil, nil, err
	}

	categories, err := db.EncodeCategories(nil)
	if err != nil {
		return nil, nil, storeError("could not create the room", err)
	}
	room := &db.Room{
		ID:             uuid.NewString(),
		InvitationCode: newInvitationCode(),
		OrganizerID:    uuid.Nil.String(),
		Categories:     datatypes.JSON(categories),
		State:          roomStateLobby,
	}
	if err := s.store.CreateRoom(room); err != nil {
		return nil, nil, storeError("could not create the room", err)
	}

	organizer := &db.Player{
		ID:          uuid.NewString(),
		RoomID:      room.ID,
		Name:        name,
		IsOrganizer: true,
	}
	if err := s.store.CreatePlayer(organizer); err != nil {
		return nil, nil, storeError("could not create the organizer", err)
	}

	if err := s.store.UpdateRoom(room.ID, map[string]any{"organizer_id": organizer.ID}); err != nil {
		return nil, nil, storeFailure("could not link the organizer to the room", err)
	}
	room.OrganizerID = organizer.ID
	return room, organizer, nil
}

func (s *Server) joinRoom(code, playerName string) (*db.Room, *db.Player, error) {
	normalized, err := validateInvitationCode(code)
	if err != nil {
		return nil, nil, err
	}
	name, err := validateName(playerName)
	if err != nil {
		return nil, nil, err
	}

	room, err := s.store.RoomByCode(normalized)
	if err != nil {
		return nil, nil, storeFailure("room not found", err)
	}
	if room.State != roomStateLobby {
		return nil, nil, preconditionError("the game is already in progress")
	}

	player := &db.Player{
		ID:     uuid.NewString(),
		RoomID: room.ID,
		Name:   name,
	}
	if err := s.store.CreatePlayer(player); err != nil {
		return nil, nil, storeError("could not join the room", err)
	}
	return room, player, nil
}

// requireOrganizer resolves the acting player and checks the organizer flag
// against the current row, not whatever the client believes.
func (s *Server) requireOrganizer(playerID string) (*db.Player, error) {
	if playerID == "" {
		return nil, validationError("player id is required")
	}
	player, err := s.store.PlayerByID(playerID)
	if err != nil {
		return nil, storeFailure("player not found", err)
	}
	if !player.IsOrganizer {
		return nil, forbiddenError("only the organizer can do this")
	}
	return player, nil
}
