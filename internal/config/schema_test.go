package config

import (
	"errors"
	"strings"
	"testing"
)

const sampleConfig = `{
  "defaultDogSpeed": 3.0,
  "defaultBagCapacity": 3,
  "defaultMaxPlayers": 8,
  "lootGeneratorConfig": {"period": 5.0, "probability": 0.5},
  "maps": [
    {
      "id": "map1",
      "name": "Map One",
      "lootTypes": [{"name": "key", "value": 5}, {"name": "wallet", "value": 10}],
      "roads": [{"x0": 0, "y0": 0, "x1": 10}, {"x0": 10, "y0": 0, "y1": 10}],
      "buildings": [{"x": 1, "y": 1, "w": 2, "h": 2}],
      "offices": [{"id": "office1", "x": 10, "y": 10, "offsetX": 0, "offsetY": 0}]
    }
  ]
}`

func TestDecodeGameFile(t *testing.T) {
	data, err := decodeGameFile(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Entries) != 1 {
		t.Fatalf("expected 1 map entry, got %d", len(data.Entries))
	}
	entry := data.Entries[0]
	if entry.Map.ID != "map1" {
		t.Errorf("expected map1, got %s", entry.Map.ID)
	}
	if len(entry.Map.Roads()) != 2 {
		t.Errorf("expected 2 roads, got %d", len(entry.Map.Roads()))
	}
	if len(entry.LootKinds) != 2 {
		t.Errorf("expected 2 loot kinds, got %d", len(entry.LootKinds))
	}
	if entry.Session.CharactersSpeed != 3.0 {
		t.Errorf("expected default dog speed applied, got %v", entry.Session.CharactersSpeed)
	}
}

func TestDecodeGameFileRejectsNoLootTypes(t *testing.T) {
	const bad = `{"maps":[{"id":"map1","name":"x","lootTypes":[],"roads":[{"x0":0,"y0":0,"x1":1}]}]}`
	_, err := decodeGameFile(strings.NewReader(bad))
	if !errors.Is(err, ErrNoLootTypes) {
		t.Fatalf("expected ErrNoLootTypes, got %v", err)
	}
}

func TestDecodeGameFileRejectsDuplicateMapID(t *testing.T) {
	const bad = `{"maps":[
		{"id":"map1","name":"a","lootTypes":[{"name":"key","value":1}],"roads":[{"x0":0,"y0":0,"x1":1}]},
		{"id":"map1","name":"b","lootTypes":[{"name":"key","value":1}],"roads":[{"x0":0,"y0":0,"x1":1}]}
	]}`
	_, err := decodeGameFile(strings.NewReader(bad))
	if !errors.Is(err, ErrDuplicateMap) {
		t.Fatalf("expected ErrDuplicateMap, got %v", err)
	}
}

func TestDecodeRoadRejectsAmbiguous(t *testing.T) {
	x1 := 1.0
	y1 := 1.0
	_, err := decodeRoad(fileRoad{X0: 0, Y0: 0, X1: &x1, Y1: &y1})
	if !errors.Is(err, ErrAmbiguousRoad) {
		t.Fatalf("expected ErrAmbiguousRoad for both set, got %v", err)
	}
	_, err = decodeRoad(fileRoad{X0: 0, Y0: 0})
	if !errors.Is(err, ErrAmbiguousRoad) {
		t.Fatalf("expected ErrAmbiguousRoad for neither set, got %v", err)
	}
}
