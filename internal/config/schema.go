// Package config loads the JSON map/config file into the game model
// and resolves the CLI-flag/environment-derived server configuration.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"dogworld-server/internal/game"
	"dogworld-server/internal/geom"
	"dogworld-server/internal/model"
)

// ErrDuplicateMap mirrors game.ErrDuplicateMap for loader-time
// failures reported before any map reaches Game.AddMap.
var ErrDuplicateMap = fmt.Errorf("config: duplicate map id")

// ErrNoLootTypes is returned when a map declares zero loot types.
var ErrNoLootTypes = fmt.Errorf("config: map must declare at least one loot type")

// ErrAmbiguousRoad is returned when a road declares neither or both of
// x1/y1.
var ErrAmbiguousRoad = fmt.Errorf("config: road must set exactly one of x1 or y1")

type fileRoot struct {
	DefaultDogSpeed    float64         `json:"defaultDogSpeed"`
	DefaultBagCapacity int             `json:"defaultBagCapacity"`
	DefaultMaxPlayers  int             `json:"defaultMaxPlayers"`
	LootGeneratorCfg   fileLootGenCfg  `json:"lootGeneratorConfig"`
	Maps               []fileMap       `json:"maps"`
}

type fileLootGenCfg struct {
	Period      float64 `json:"period"`
	Probability float64 `json:"probability"`
}

type fileMap struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DogSpeed    *float64       `json:"dogSpeed"`
	BagCapacity *int           `json:"bagCapacity"`
	MaxPlayers  *int           `json:"maxPlayers"`
	LootTypes   []fileLootType `json:"lootTypes"`
	Roads       []fileRoad     `json:"roads"`
	Buildings   []fileBuilding `json:"buildings"`
	Offices     []fileOffice   `json:"offices"`
}

type fileLootType struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type fileRoad struct {
	X0 float64  `json:"x0"`
	Y0 float64  `json:"y0"`
	X1 *float64 `json:"x1"`
	Y1 *float64 `json:"y1"`
}

type fileBuilding struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type fileOffice struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// GameData is the result of loading the config file: the maps and
// their per-map session defaults/loot kinds, plus the global loot
// generator config, ready to feed into game.New + Game.AddMap.
type GameData struct {
	LootGenConfig game.LootGenConfig
	Entries       []MapEntry
}

// MapEntry bundles a loaded map with the session config and loot
// kinds it should be registered with.
type MapEntry struct {
	Map       *model.Map
	Session   game.SessionConfig
	LootKinds []model.LootKind
}

// LoadGameFile reads and decodes the JSON config file at path.
func LoadGameFile(path string) (GameData, error) {
	f, err := os.Open(path)
	if err != nil {
		return GameData{}, err
	}
	defer f.Close()
	return decodeGameFile(f)
}

func decodeGameFile(r io.Reader) (GameData, error) {
	var root fileRoot
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return GameData{}, fmt.Errorf("config: decode: %w", err)
	}

	data := GameData{
		LootGenConfig: game.LootGenConfig{
			Period:      time.Duration(root.LootGeneratorCfg.Period * float64(time.Second)),
			Probability: root.LootGeneratorCfg.Probability,
		},
	}

	seen := make(map[string]bool, len(root.Maps))
	for _, fm := range root.Maps {
		if seen[fm.ID] {
			return GameData{}, fmt.Errorf("%w: %q", ErrDuplicateMap, fm.ID)
		}
		seen[fm.ID] = true

		entry, err := decodeMap(fm, root)
		if err != nil {
			return GameData{}, fmt.Errorf("config: map %q: %w", fm.ID, err)
		}
		data.Entries = append(data.Entries, entry)
	}
	return data, nil
}

func decodeMap(fm fileMap, root fileRoot) (MapEntry, error) {
	if len(fm.LootTypes) == 0 {
		return MapEntry{}, ErrNoLootTypes
	}

	dogSpeed := root.DefaultDogSpeed
	if fm.DogSpeed != nil {
		dogSpeed = *fm.DogSpeed
	}
	bagCap := root.DefaultBagCapacity
	if fm.BagCapacity != nil {
		bagCap = *fm.BagCapacity
	}
	maxPlayers := root.DefaultMaxPlayers
	if fm.MaxPlayers != nil {
		maxPlayers = *fm.MaxPlayers
	}

	m := model.NewMap(fm.ID, fm.Name, dogSpeed, bagCap, maxPlayers)

	for _, fr := range fm.Roads {
		road, err := decodeRoad(fr)
		if err != nil {
			return MapEntry{}, err
		}
		m.AddRoad(road)
	}
	for _, fb := range fm.Buildings {
		m.AddBuilding(model.Building{Rect: geom.Rectangle{
			Position: geom.Position{X: fb.X, Y: fb.Y},
			Size:     geom.Size{Width: fb.W, Height: fb.H},
		}})
	}
	for _, fo := range fm.Offices {
		if err := m.AddOffice(model.Office{
			ID:       fo.ID,
			Position: geom.Position{X: fo.X, Y: fo.Y},
			Offset:   geom.Offset{DX: fo.OffsetX, DY: fo.OffsetY},
		}); err != nil {
			return MapEntry{}, err
		}
	}

	kinds := make([]model.LootKind, len(fm.LootTypes))
	for i, lt := range fm.LootTypes {
		kinds[i] = model.LootKind{Name: lt.Name, Type: i, Value: lt.Value}
	}

	return MapEntry{
		Map: m,
		Session: game.SessionConfig{
			CharactersSpeed: dogSpeed,
			BagCapacity:     bagCap,
			MaxPlayers:      maxPlayers,
		},
		LootKinds: kinds,
	}, nil
}

// decodeRoad picks the horizontal/vertical constructor based on which
// of x1/y1 is present; a road with both or neither is ErrAmbiguousRoad.
func decodeRoad(fr fileRoad) (model.Road, error) {
	switch {
	case fr.X1 != nil && fr.Y1 == nil:
		return model.NewHorizontalRoad(fr.X0, *fr.X1, fr.Y0), nil
	case fr.Y1 != nil && fr.X1 == nil:
		return model.NewVerticalRoad(fr.X0, fr.Y0, *fr.Y1), nil
	default:
		return model.Road{}, ErrAmbiguousRoad
	}
}
