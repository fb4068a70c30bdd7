// Package game holds the session manager and the top-level Game
// orchestrator: the "game strand" described by the concurrency model,
// realized as a single mutex guarding every mutable piece of world
// state.
package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"dogworld-server/internal/model"
)

// Game owns every map, the session manager, and the per-map
// simulation defaults. It embeds sync.Mutex so that callers in other
// packages (the HTTP adapter, the tick loop) can bracket composite
// operations with Lock/Unlock.
type Game struct {
	sync.Mutex

	log *logrus.Entry

	maps     map[string]*model.Map
	mapOrder []string

	sessionConfigs map[string]SessionConfig
	lootKinds      map[string][]model.LootKind
	lootGenConfig  LootGenConfig

	sessions *sessionManager
	rng      *rand.Rand
}

// ErrDuplicateMap is returned by AddMap for a repeated map id —
// carried forward from the source's Game::add_map, which spec.md is
// silent on.
var ErrDuplicateMap = fmt.Errorf("game: duplicate map id")

// ErrUnknownMap is returned by Join for an id with no registered map.
var ErrUnknownMap = fmt.Errorf("game: unknown map id")

// New builds an empty Game. rngSeed seeds the master random source
// used to derive each session's own *rand.Rand, so runs are
// reproducible in tests while still being independent per session.
func New(lootGenConfig LootGenConfig, rngSeed int64, log *logrus.Entry) *Game {
	return &Game{
		log:            log,
		maps:           make(map[string]*model.Map),
		sessionConfigs: make(map[string]SessionConfig),
		lootKinds:      make(map[string][]model.LootKind),
		lootGenConfig:  lootGenConfig,
		sessions:       newSessionManager(),
		rng:            rand.New(rand.NewSource(rngSeed)),
	}
}

// AddMap registers a map with its per-map session defaults and loot
// kind registry. Must be called before the server starts accepting
// requests; Game's map set is otherwise immutable.
func (g *Game) AddMap(m *model.Map, cfg SessionConfig, kinds []model.LootKind) error {
	if _, exists := g.maps[m.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMap, m.ID)
	}
	g.maps[m.ID] = m
	g.mapOrder = append(g.mapOrder, m.ID)
	g.sessionConfigs[m.ID] = cfg
	g.lootKinds[m.ID] = kinds
	return nil
}

// FindMap looks up a map by id.
func (g *Game) FindMap(id string) (*model.Map, bool) {
	m, ok := g.maps[id]
	return m, ok
}

// Maps returns every registered map, in registration order.
func (g *Game) Maps() []*model.Map {
	out := make([]*model.Map, 0, len(g.mapOrder))
	for _, id := range g.mapOrder {
		out = append(out, g.maps[id])
	}
	return out
}

// Join resolves (or creates) the least-loaded session for mapID.
func (g *Game) Join(mapID string) (*Session, error) {
	m, ok := g.maps[mapID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, mapID)
	}
	cfg := g.sessionConfigs[mapID]
	kinds := g.lootKinds[mapID]
	sess := g.sessions.join(mapID, cfg.MaxPlayers, func() *Session {
		sessionLog := g.log.WithField("map_id", mapID)
		return NewSession(m, cfg, kinds, g.lootGenConfig, rand.New(rand.NewSource(g.rng.Int63())), sessionLog)
	})
	return sess, nil
}

// NewSessionForRestore creates and registers a fresh, empty session
// for mapID using that map's configured defaults, for snapshot.Apply
// to populate via Session.RestoreDog/RestoreLoot. It bypasses
// sessionManager's least-loaded selection since restore recreates the
// exact set of sessions that existed at save time, one at a time.
func (g *Game) NewSessionForRestore(mapID string) (*Session, error) {
	m, ok := g.maps[mapID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, mapID)
	}
	cfg := g.sessionConfigs[mapID]
	kinds := g.lootKinds[mapID]
	sessionLog := g.log.WithField("map_id", mapID)
	sess := NewSession(m, cfg, kinds, g.lootGenConfig, rand.New(rand.NewSource(g.rng.Int63())), sessionLog)
	g.sessions.append(mapID, sess)
	return sess, nil
}

// ResetSessions discards every session on every map, used by snapshot
// restore to rebuild state from scratch before repopulating it.
func (g *Game) ResetSessions() {
	g.sessions = newSessionManager()
}

// Sessions returns every session across every map, sorted by id so
// that repeated calls, and so the tick order, are stable.
func (g *Game) Sessions() []*Session {
	all := g.sessions.allSessions()
	sort.Slice(all, func(i, j int) bool { return all[i].uid.String() < all[j].uid.String() })
	return all
}

// SessionsByMap returns every session grouped by map id, each group in
// creation order — the shape snapshot.Capture needs to record a
// session's (mapID, index) identity.
func (g *Game) SessionsByMap() map[string][]*Session {
	out := make(map[string][]*Session, len(g.sessions.byMap))
	for mapID, sessions := range g.sessions.byMap {
		out[mapID] = append([]*Session(nil), sessions...)
	}
	return out
}

// Tick advances every session by delta. A panicking session tick is
// recovered and logged so the remaining sessions still advance and
// the process keeps running — mirroring the source's policy that tick
// handler exceptions are swallowed.
func (g *Game) Tick(delta time.Duration) {
	for _, sess := range g.Sessions() {
		g.tickOne(sess, delta)
	}
}

func (g *Game) tickOne(sess *Session, delta time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			g.log.WithField("session_id", sess.ID()).WithField("panic", r).Error("tick panic recovered")
		}
	}()
	sess.Tick(delta)
}
