package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dogworld-server/internal/collide"
	"dogworld-server/internal/geom"
	"dogworld-server/internal/loot"
	"dogworld-server/internal/model"
	"dogworld-server/internal/motion"
)

// ErrUnknownDog is returned by SetMove for a dog id not in the session.
var ErrUnknownDog = errors.New("game: unknown dog id")

// randSource adapts *rand.Rand to loot.RNG.
type randSource struct{ r *rand.Rand }

func (s randSource) Float64() float64 { return s.r.Float64() }

// Session is one active simulation on one map: dogs, lost objects, and
// the tick step. It is not safe for concurrent use on its own — Game
// guards every call with its single mutex, the "game strand".
type Session struct {
	uid uuid.UUID

	mapRef    *model.Map
	cfg       SessionConfig
	lootKinds []model.LootKind
	lootGen   *loot.Generator
	rng       *rand.Rand
	log       *logrus.Entry

	dogs        map[uint64]*model.Dog
	lostObjects map[uint64]*model.Loot
	nextDogID   uint64
	nextLootID  uint64
}

// NewSession builds an empty session seeded from the map's per-map
// defaults. rng is the session's own random source, used for dog/loot
// spawn positions and loot kind selection.
func NewSession(mapRef *model.Map, cfg SessionConfig, lootKinds []model.LootKind, lootCfg LootGenConfig, rng *rand.Rand, log *logrus.Entry) *Session {
	return &Session{
		uid:         uuid.New(),
		mapRef:      mapRef,
		cfg:         cfg,
		lootKinds:   lootKinds,
		lootGen:     loot.New(loot.Config{Period: lootCfg.Period, Probability: lootCfg.Probability}, randSource{rng}),
		rng:         rng,
		log:         log,
		dogs:        make(map[uint64]*model.Dog),
		lostObjects: make(map[uint64]*model.Loot),
	}
}

// ID is the session's log-correlation identifier.
func (s *Session) ID() uuid.UUID { return s.uid }

// Map is the session's immutable map reference.
func (s *Session) Map() *model.Map { return s.mapRef }

// Config is the session's simulation configuration.
func (s *Session) Config() SessionConfig { return s.cfg }

// DogCount is the number of dogs currently in the session.
func (s *Session) DogCount() int { return len(s.dogs) }

// Characters returns the session's dogs keyed by id. Callers must not
// mutate the map.
func (s *Session) Characters() map[uint64]*model.Dog { return s.dogs }

// LostObjects returns the session's unclaimed loot keyed by id.
// Callers must not mutate the map.
func (s *Session) LostObjects() map[uint64]*model.Loot { return s.lostObjects }

// AddDog creates a fresh dog, spawn-positioned per the session's
// randomize_spawn config, with an empty bagpack of configured
// capacity.
func (s *Session) AddDog(name string) (uint64, *model.Dog) {
	s.nextDogID++
	id := s.nextDogID
	pos := motion.SpawnPosition(s.mapRef, s.rng, s.cfg.RandomizeSpawn)
	dog := model.NewDog(id, name, pos, s.cfg.BagCapacity)
	s.dogs[id] = dog
	return id, dog
}

// RestoreDog reinstalls a dog at a specific id during snapshot
// restore, advancing the id counter so future AddDog calls never
// collide with a restored id.
func (s *Session) RestoreDog(dog *model.Dog) {
	s.dogs[dog.ID] = dog
	if dog.ID > s.nextDogID {
		s.nextDogID = dog.ID
	}
}

// RestoreLoot reinstalls a lost object at a specific id during
// snapshot restore.
func (s *Session) RestoreLoot(l *model.Loot) {
	s.lostObjects[l.ID] = l
	if l.ID > s.nextLootID {
		s.nextLootID = l.ID
	}
}

// SetMove maps a wire letter to a direction and sets the dog's speed
// at the session's configured character speed.
func (s *Session) SetMove(dogID uint64, letter string) error {
	dog, ok := s.dogs[dogID]
	if !ok {
		return ErrUnknownDog
	}
	return dog.SetMove(letter, s.cfg.CharactersSpeed)
}

// Tick advances the session by delta: integrate motion, spawn loot,
// then resolve collisions between this tick's gatherers and every
// current loot item plus every office, in time order.
func (s *Session) Tick(delta time.Duration) {
	deltaMs := delta.Milliseconds()

	gatherers := make([]collide.Gatherer, 0, len(s.dogs))
	dogByGatherer := make([]uint64, 0, len(s.dogs))
	for id, dog := range s.dogs {
		newPos, reachedEnd, ok := motion.Integrate(s.mapRef, dog.Position, dog.Speed, deltaMs)
		if !ok {
			s.log.WithField("dog_id", id).Warn("dog off-road, leaving it in place")
			newPos = dog.Position
		}
		gatherers = append(gatherers, collide.Gatherer{DogID: id, Start: dog.Position, End: newPos, Width: model.DogWidth})
		dogByGatherer = append(dogByGatherer, id)
		dog.Position = newPos
		if reachedEnd {
			dog.Speed = geom.Speed{}
		}
	}

	s.spawnLoot(delta)

	objects := s.buildCollisionObjects()
	events := collide.FindEvents(gatherers, objects)

	for _, ev := range events {
		dogID := dogByGatherer[ev.GathererIdx]
		dog, ok := s.dogs[dogID]
		if !ok {
			continue
		}
		obj := objects[ev.ObjectIdx]
		switch obj.Kind {
		case collide.Loot:
			l, stillLost := s.lostObjects[obj.ObjectID]
			if !stillLost {
				continue
			}
			if dog.Bagpack.Add(l) {
				delete(s.lostObjects, obj.ObjectID)
			}
		case collide.Base:
			if dog.Bagpack.Len() == 0 {
				continue
			}
			dog.AddScore(dog.Bagpack.TotalValue())
			dog.Bagpack.Clear()
		}
	}
}

func (s *Session) spawnLoot(delta time.Duration) {
	n := s.lootGen.Generate(delta, len(s.lostObjects), len(s.dogs))
	for i := 0; i < n; i++ {
		kind := s.lootKinds[s.rng.Intn(len(s.lootKinds))]
		s.nextLootID++
		pos := motion.SpawnPosition(s.mapRef, s.rng, true)
		s.lostObjects[s.nextLootID] = &model.Loot{
			ID:       s.nextLootID,
			Type:     kind.Type,
			Value:    kind.Value,
			Name:     kind.Name,
			Position: pos,
		}
	}
}

// buildCollisionObjects registers every current lost object (not only
// ones spawned this tick) plus every office as collision objects.
// This is a deliberate correction over the source, whose process_
// collisions only ever re-registers newly spawned loot each tick —
// see DESIGN.md: pre-placed loot must remain collectable on later
// ticks for the bag-capacity and pickup-then-deposit scenarios to
// hold.
func (s *Session) buildCollisionObjects() []collide.Object {
	objects := make([]collide.Object, 0, len(s.lostObjects)+len(s.mapRef.Offices()))
	for id, l := range s.lostObjects {
		objects = append(objects, collide.Object{Kind: collide.Loot, ObjectID: id, Position: l.Position, Width: model.LootWidth})
	}
	for _, o := range s.mapRef.Offices() {
		objects = append(objects, collide.Object{Kind: collide.Base, Position: o.Position, Width: model.OfficeWidth})
	}
	return objects
}
