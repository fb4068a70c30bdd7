// Package snapshot implements the persistence format: a deterministic
// JSON capture of every session's dogs and lost objects plus the
// token/player bindings, written atomically and restored
// transactionally.
package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"

	"dogworld-server/internal/game"
	"dogworld-server/internal/geom"
	"dogworld-server/internal/model"
	"dogworld-server/internal/players"
)

// Version is the snapshot format version tag.
const Version = 1

// Snapshot is the full persisted state.
type Snapshot struct {
	Version  int              `json:"version"`
	Sessions []SessionSnap    `json:"sessions"`
	Players  []PlayerSnap     `json:"players"`
}

// SessionSnap identifies a session by its map id and its creation
// index within that map, since sessions have no stable name of their
// own.
type SessionSnap struct {
	MapID       string      `json:"mapId"`
	Index       int         `json:"index"`
	Dogs        []DogSnap   `json:"dogs"`
	LostObjects []LootSnap  `json:"lostObjects"`
}

// DogSnap captures every attribute a dog needs round-tripped.
type DogSnap struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Position  geom.Position `json:"position"`
	Speed     geom.Speed    `json:"speed"`
	Direction string        `json:"direction"`
	Score     uint64        `json:"score"`
	Bagpack   []LootSnap    `json:"bagpack"`
}

// LootSnap captures a loot instance, used both for a session's
// lost-objects list and for bagpack contents.
type LootSnap struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Position geom.Position `json:"position"`
	Type     int           `json:"type"`
	Value    int           `json:"value"`
}

// PlayerSnap captures a token's binding to a specific dog in a
// specific session, addressed the same way SessionSnap is.
type PlayerSnap struct {
	Token        string `json:"token"`
	MapID        string `json:"mapId"`
	SessionIndex int    `json:"sessionIndex"`
	DogID        uint64 `json:"dogId"`
}

// Capture builds a deterministic snapshot of the current game and
// player registry state: maps and sessions are visited in sorted id
// order, dogs and loot sorted by id, players sorted by token.
func Capture(g *game.Game, reg *players.Registry) Snapshot {
	snap := Snapshot{Version: Version}

	byMap := g.SessionsByMap()
	mapIDs := make([]string, 0, len(byMap))
	for id := range byMap {
		mapIDs = append(mapIDs, id)
	}
	sort.Strings(mapIDs)

	sessionIndex := make(map[*game.Session]struct {
		mapID string
		index int
	})

	for _, mapID := range mapIDs {
		for i, sess := range byMap[mapID] {
			sessionIndex[sess] = struct {
				mapID string
				index int
			}{mapID, i}

			snap.Sessions = append(snap.Sessions, SessionSnap{
				MapID:       mapID,
				Index:       i,
				Dogs:        captureDogs(sess),
				LostObjects: captureLoot(sess),
			})
		}
	}

	tokens := make([]string, 0, len(reg.All()))
	byToken := reg.All()
	for t := range byToken {
		tokens = append(tokens, string(t))
	}
	sort.Strings(tokens)
	for _, t := range tokens {
		p := byToken[players.Token(t)]
		loc := sessionIndex[p.Session]
		snap.Players = append(snap.Players, PlayerSnap{
			Token:        t,
			MapID:        loc.mapID,
			SessionIndex: loc.index,
			DogID:        p.DogID,
		})
	}

	return snap
}

func captureDogs(sess *game.Session) []DogSnap {
	dogs := sess.Characters()
	ids := make([]uint64, 0, len(dogs))
	for id := range dogs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]DogSnap, 0, len(ids))
	for _, id := range ids {
		d := dogs[id]
		out = append(out, DogSnap{
			ID:        d.ID,
			Name:      d.Name,
			Position:  d.Position,
			Speed:     d.Speed,
			Direction: d.Direction.Letter(),
			Score:     d.Score,
			Bagpack:   lootSnapsFromMap(d.Bagpack.Items()),
		})
	}
	return out
}

func captureLoot(sess *game.Session) []LootSnap {
	return lootSnapsFromMap(sess.LostObjects())
}

func lootSnapsFromMap(m map[uint64]*model.Loot) []LootSnap {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]LootSnap, 0, len(ids))
	for _, id := range ids {
		l := m[id]
		out = append(out, LootSnap{ID: l.ID, Name: l.Name, Position: l.Position, Type: l.Type, Value: l.Value})
	}
	return out
}

// Marshal serializes a snapshot deterministically: Go's encoding/json
// already emits struct fields in declaration order and map keys are
// avoided throughout in favor of sorted slices, so repeated calls on
// identical input produce byte-identical output.
func Marshal(snap Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Unmarshal decodes a snapshot without touching any live state —
// callers apply it via Apply only after a successful decode, so a
// malformed file never partially mutates the game.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	if snap.Version != Version {
		return Snapshot{}, fmt.Errorf("snapshot: unsupported version %d", snap.Version)
	}
	return snap, nil
}

// Apply rebuilds the game's sessions and the player registry from
// snap. It is the last step of a restore, after Unmarshal has already
// validated the bytes decode cleanly; Apply itself fails if snap
// references a map id the game no longer has, or a player references a
// session snap does not contain, and in either case neither game nor
// reg have been mutated.
func Apply(g *game.Game, reg *players.Registry, snap Snapshot) error {
	knownLocs := make(map[string]bool, len(snap.Sessions))
	for _, ss := range snap.Sessions {
		if _, ok := g.FindMap(ss.MapID); !ok {
			return fmt.Errorf("snapshot: unknown map id %q", ss.MapID)
		}
		knownLocs[locKey(ss.MapID, ss.Index)] = true
	}
	for _, ps := range snap.Players {
		if !knownLocs[locKey(ps.MapID, ps.SessionIndex)] {
			return fmt.Errorf("snapshot: player token references unknown session %s/%d", ps.MapID, ps.SessionIndex)
		}
	}

	g.ResetSessions()
	reg.Reset()

	sessionsByLoc := make(map[string]*game.Session)
	for _, ss := range snap.Sessions {
		sess, err := g.NewSessionForRestore(ss.MapID)
		if err != nil {
			return err
		}
		bagCap := sess.Config().BagCapacity
		for _, ds := range ss.Dogs {
			sess.RestoreDog(dogFromSnap(ds, bagCap))
		}
		for _, ls := range ss.LostObjects {
			sess.RestoreLoot(lootFromSnap(ls))
		}
		sessionsByLoc[locKey(ss.MapID, ss.Index)] = sess
	}

	for _, ps := range snap.Players {
		sess, ok := sessionsByLoc[locKey(ps.MapID, ps.SessionIndex)]
		if !ok {
			return fmt.Errorf("snapshot: player token references unknown session %s/%d", ps.MapID, ps.SessionIndex)
		}
		reg.Bind(players.Token(ps.Token), sess, ps.DogID)
	}

	return nil
}

func locKey(mapID string, index int) string {
	return fmt.Sprintf("%s/%d", mapID, index)
}

func dogFromSnap(ds DogSnap, bagCapacity int) *model.Dog {
	dir, _ := model.DirectionFromLetter(ds.Direction)
	bag := model.NewBagpack(bagCapacity)
	for _, ls := range ds.Bagpack {
		bag.Add(lootFromSnap(ls))
	}
	return &model.Dog{
		ID:        ds.ID,
		Name:      ds.Name,
		Position:  ds.Position,
		Speed:     ds.Speed,
		Direction: dir,
		Score:     ds.Score,
		Bagpack:   bag,
	}
}

func lootFromSnap(ls LootSnap) *model.Loot {
	return &model.Loot{ID: ls.ID, Name: ls.Name, Position: ls.Position, Type: ls.Type, Value: ls.Value}
}
