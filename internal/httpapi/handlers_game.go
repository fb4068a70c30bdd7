package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errInvalidArgument("malformed request body"))
		return
	}
	if req.UserName == "" {
		writeError(w, errInvalidArgument("userName must not be empty"))
		return
	}

	s.game.Lock()
	defer s.game.Unlock()

	if _, ok := s.game.FindMap(req.MapID); !ok {
		writeError(w, errMapNotFound("no such map"))
		return
	}

	sess, err := s.game.Join(req.MapID)
	if err != nil {
		writeError(w, errMapNotFound(err.Error()))
		return
	}
	dogID, _ := sess.AddDog(req.UserName)
	player := s.players.NewPlayer(sess, dogID)

	writeJSON(w, http.StatusOK, joinResponse{AuthToken: string(player.Token), PlayerID: dogID})
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r)

	s.game.Lock()
	defer s.game.Unlock()

	out := make(map[string]playerSummaryDTO)
	for id, dog := range player.Session.Characters() {
		out[formatID(id)] = playerSummaryDTO{Name: dog.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r)

	s.game.Lock()
	defer s.game.Unlock()

	resp := stateResponse{
		Players:     make(map[string]playerStateDTO),
		LostObjects: make(map[string]lootStateDTO),
	}
	for id, dog := range player.Session.Characters() {
		bag := make([]bagItemDTO, 0, dog.Bagpack.Len())
		for _, l := range dog.Bagpack.Items() {
			bag = append(bag, bagItemDTO{ID: l.ID, Type: l.Type, Value: l.Value})
		}
		resp.Players[formatID(id)] = playerStateDTO{
			Pos:   [2]float64{dog.Position.X, dog.Position.Y},
			Speed: [2]float64{dog.Speed.X, dog.Speed.Y},
			Dir:   dog.Direction.Letter(),
			Bag:   bag,
			Score: dog.Score,
		}
	}
	for id, l := range player.Session.LostObjects() {
		resp.LostObjects[formatID(id)] = lootStateDTO{Type: l.Type, Pos: [2]float64{l.Position.X, l.Position.Y}}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" && ct != "application/json" {
		writeError(w, errInvalidArgument("expected application/json"))
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errInvalidArgument("malformed request body"))
		return
	}

	player := playerFromContext(r)

	s.game.Lock()
	defer s.game.Unlock()

	if err := player.Session.SetMove(player.DogID, req.Move); err != nil {
		writeError(w, errInvalidArgument(err.Error()))
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	var req tickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errInvalidArgument("malformed request body"))
		return
	}

	s.game.Lock()
	s.game.Tick(time.Duration(req.TimeDelta) * time.Millisecond)
	s.game.Unlock()

	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
