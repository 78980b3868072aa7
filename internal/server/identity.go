package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"time"

	"tutti-frutti/internal/db"

	"gorm.io/gorm"
)

// sessionStore remembers which player a browser is. Identity is a bearer
// token: whatever player id the client presents is trusted. Resolution
// priority is query parameter, then persisted session, then absent.
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]sessionData
}

type sessionData struct {
	PlayerID string
	RoomID   string
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]sessionData),
	}
}

func (s *sessionStore) SetPlayer(w http.ResponseWriter, r *http.Request, playerID, roomID string) {
	if playerID == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		s.sessions[id] = sessionData{PlayerID: playerID, RoomID: roomID}
		s.mu.Unlock()
		return
	}
	record := db.Session{
		ID:       id,
		PlayerID: playerID,
		RoomID:   roomID,
	}
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) GetPlayer(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sessions[id].PlayerID
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return ""
	}
	return record.PlayerID
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("tf_session")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     "tf_session",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}

// resolvePlayerID applies the identity priority order and persists a freshly
// presented id for later navigations.
func (s *Server) resolvePlayerID(w http.ResponseWriter, r *http.Request, roomID string) string {
	if param := r.URL.Query().Get("playerId"); param != "" {
		if s.sessions != nil {
			s.sessions.SetPlayer(w, r, param, roomID)
		}
		return param
	}
	if s.sessions != nil {
		return s.sessions.GetPlayer(w, r)
	}
	return ""
}
