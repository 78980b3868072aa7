package server

import (
	"log"
	"net/http"
	"strings"

	"tutti-frutti/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templ.Handler(web.Home(r.URL.Query().Get("error"))).ServeHTTP(w, r)
}

// handleRoomPage serves the shared room shell for every in-game view. A
// missing room redirects to the landing page with an error flag instead of
// rendering a dead end.
func (s *Server) handleRoomPage(w http.ResponseWriter, r *http.Request) {
	view := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)[0]
	roomID, roundID, ok := parsePagePath(r.URL.Path, "/"+view+"/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.store.RoomByID(roomID); err != nil {
		log.Printf("room page missing room_id=%s view=%s", roomID, view)
		http.Redirect(w, r, "/?error=room-not-found", http.StatusFound)
		return
	}
	playerID := s.resolvePlayerID(w, r, roomID)
	templ.Handler(web.RoomShell(view, roomID, roundID, playerID)).ServeHTTP(w, r)
}
