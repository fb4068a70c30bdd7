package game

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"dogworld-server/internal/model"
)

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return logrus.NewEntry(l)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func testMap(id string) *model.Map {
	m := model.NewMap(id, "Map "+id, 3, 3, 8)
	m.AddRoad(model.NewHorizontalRoad(0, 10, 0))
	return m
}

func TestAddMapRejectsDuplicateID(t *testing.T) {
	g := New(LootGenConfig{}, 1, testLog())
	kinds := []model.LootKind{{Name: "key", Type: 0, Value: 5}}

	if err := g.AddMap(testMap("map1"), SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8}, kinds); err != nil {
		t.Fatalf("unexpected error on first AddMap: %v", err)
	}
	err := g.AddMap(testMap("map1"), SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8}, kinds)
	if !errors.Is(err, ErrDuplicateMap) {
		t.Fatalf("expected ErrDuplicateMap, got %v", err)
	}
}

func TestJoinRejectsUnknownMapID(t *testing.T) {
	g := New(LootGenConfig{}, 1, testLog())
	_, err := g.Join("nosuchmap")
	if !errors.Is(err, ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
}

func TestTickRecoversFromPanickingSession(t *testing.T) {
	g := New(LootGenConfig{}, 1, testLog())
	kinds := []model.LootKind{{Name: "key", Type: 0, Value: 5}}
	if err := g.AddMap(testMap("map1"), SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8}, kinds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddMap(testMap("map2"), SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8}, kinds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sessA, _ := g.Join("map1")
	timID, _ := sessA.AddDog("Tim")
	sessB, _ := g.Join("map2")
	sessB.AddDog("Sam")

	// Corrupt sessA's dog map to force a panic inside its Tick call, and
	// confirm the recovery in tickOne still lets sessB advance.
	sessA.dogs[timID] = nil

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Tick should recover internally, but panic escaped: %v", r)
		}
	}()
	g.Tick(100 * time.Millisecond)

	if sessB.DogCount() != 1 {
		t.Errorf("expected session B to still have its dog after session A panicked, got %d", sessB.DogCount())
	}
}

func TestSessionsSortedDeterministically(t *testing.T) {
	g := New(LootGenConfig{}, 1, testLog())
	kinds := []model.LootKind{{Name: "key", Type: 0, Value: 5}}
	if err := g.AddMap(testMap("map1"), SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 1}, kinds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		sess, err := g.Join("map1")
		if err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
		sess.AddDog("p")
	}

	first := g.Sessions()
	second := g.Sessions()
	if len(first) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(first))
	}
	for i := range first {
		if first[i].ID() != second[i].ID() {
			t.Errorf("Sessions() order is not stable across calls at index %d", i)
		}
	}
}
