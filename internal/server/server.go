package server

import (
	"net/http"

	"tutti-frutti/internal/config"
	"tutti-frutti/internal/store"

	"gorm.io/gorm"
)

type Server struct {
	store    store.Store
	cfg      config.Config
	sessions *sessionStore
	ws       *wsHub
}

// New builds the server. With a nil connection every row lives in memory,
// which is how the tests run.
func New(conn *gorm.DB, cfg config.Config) *Server {
	var st store.Store
	if conn != nil {
		st = store.NewPostgres(conn)
	} else {
		st = store.NewMemory()
	}
	return &Server{
		store:    st,
		cfg:      cfg,
		sessions: newSessionStore(conn),
		ws:       newWSHub(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /lobby/", s.handleRoomPage)
	mux.HandleFunc("GET /play/", s.handleRoomPage)
	mux.HandleFunc("GET /score/", s.handleRoomPage)
	mux.HandleFunc("GET /results/", s.handleRoomPage)
	mux.HandleFunc("GET /ranking/", s.handleRoomPage)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/rounds/reroll", s.handleReroll)
	mux.HandleFunc("GET /ws/rooms/", s.handleWebsocket)
	return mux
}
