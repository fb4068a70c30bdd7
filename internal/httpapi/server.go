package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"dogworld-server/internal/game"
	"dogworld-server/internal/model"
	"dogworld-server/internal/players"
)

// Server holds the adapter's dependencies: the game core, the player
// registry, the static file root, and whether the test-only tick
// endpoint should be registered.
type Server struct {
	game     *game.Game
	players  *players.Registry
	wwwRoot  string
	testMode bool
	log      *logrus.Entry

	lootKinds map[string][]model.LootKind
}

// New builds a Server. lootKinds lets the map DTO include loot types,
// which Game does not expose directly (they live alongside, not
// inside, each *model.Map).
func New(g *game.Game, reg *players.Registry, wwwRoot string, testMode bool, lootKinds map[string][]model.LootKind, log *logrus.Entry) *Server {
	return &Server{game: g, players: reg, wwwRoot: wwwRoot, testMode: testMode, lootKinds: lootKinds, log: log}
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/maps", s.handleListMaps).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/maps/{id}", s.handleGetMap).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/game/join", s.handleJoin).Methods(http.MethodPost)
	api.HandleFunc("/game/players", s.authMiddleware(s.handlePlayers)).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/game/state", s.authMiddleware(s.handleState)).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/game/player/action", s.authMiddleware(s.handleAction)).Methods(http.MethodPost)
	if s.testMode {
		api.HandleFunc("/game/tick", s.handleTick).Methods(http.MethodPost)
	}
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errBadRequest("no such API route"))
	})
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errInvalidMethod("method not allowed on this route"))
	})

	r.PathPrefix("/").Handler(s.staticHandler())

	return s.accessLog(r)
}
