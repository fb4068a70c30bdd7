package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	s.game.Lock()
	maps := s.game.Maps()
	s.game.Unlock()

	out := make([]mapSummaryDTO, 0, len(maps))
	for _, m := range maps {
		out = append(out, mapSummaryDTO{ID: m.ID, Name: m.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.game.Lock()
	m, ok := s.game.FindMap(id)
	s.game.Unlock()
	if !ok {
		writeError(w, errMapNotFound("no such map"))
		return
	}

	writeJSON(w, http.StatusOK, mapToDTO(m, s.lootKinds[id]))
}
