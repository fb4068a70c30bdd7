package game

import (
	"math/rand"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"dogworld-server/internal/geom"
	"dogworld-server/internal/model"
)

func straightRoadMap(bagCap int) *model.Map {
	m := model.NewMap("map1", "Straight Road", 3, bagCap, 8)
	m.AddRoad(model.NewHorizontalRoad(0, 10, 0))
	_ = m.AddOffice(model.Office{ID: "office1", Position: geom.Position{X: 10, Y: 0}})
	return m
}

func TestSessionTickPickupThenDeposit(t *testing.T) {
	Convey("Given a dog crossing three loot items to an office", t, func() {
		m := straightRoadMap(3)
		cfg := SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8}
		sess := NewSession(m, cfg, nil, LootGenConfig{}, rand.New(rand.NewSource(1)), testLog())

		dogID, dog := sess.AddDog("Tim")
		dog.Position = geom.Position{X: 0, Y: 0}

		sess.RestoreLoot(&model.Loot{ID: 100, Name: "key", Type: 0, Value: 5, Position: geom.Position{X: 2, Y: 0}})
		sess.RestoreLoot(&model.Loot{ID: 101, Name: "key", Type: 0, Value: 5, Position: geom.Position{X: 4, Y: 0}})
		sess.RestoreLoot(&model.Loot{ID: 102, Name: "key", Type: 0, Value: 5, Position: geom.Position{X: 6, Y: 0}})

		So(sess.SetMove(dogID, "R"), ShouldBeNil)

		Convey("a tick that crosses the whole road collects all three and deposits", func() {
			sess.Tick(4 * time.Second)

			So(sess.LostObjects(), ShouldBeEmpty)
			So(dog.Score, ShouldEqual, uint64(15))
			So(dog.Bagpack.Len(), ShouldEqual, 0)
			So(dog.Position.X, ShouldEqual, 10)
		})
	})
}

func TestSessionTickBagCapacityRefusesExtra(t *testing.T) {
	Convey("Given a bag capacity of one and two loots before an office", t, func() {
		m := straightRoadMap(1)
		cfg := SessionConfig{CharactersSpeed: 3, BagCapacity: 1, MaxPlayers: 8}
		sess := NewSession(m, cfg, nil, LootGenConfig{}, rand.New(rand.NewSource(1)), testLog())

		dogID, dog := sess.AddDog("Tim")
		dog.Position = geom.Position{X: 0, Y: 0}
		sess.RestoreLoot(&model.Loot{ID: 1, Value: 5, Position: geom.Position{X: 2, Y: 0}})
		sess.RestoreLoot(&model.Loot{ID: 2, Value: 5, Position: geom.Position{X: 4, Y: 0}})
		_ = sess.SetMove(dogID, "R")

		Convey("only the first loot reached is collected", func() {
			sess.Tick(4 * time.Second)

			So(len(sess.LostObjects()), ShouldEqual, 1)
			if _, stillLost := sess.LostObjects()[2]; !stillLost {
				t.Error("expected the second loot to remain uncollected")
			}
		})
	})
}

func TestSessionTickZeroesSpeedAtRoadEnd(t *testing.T) {
	Convey("Given a dog approaching the end of its road", t, func() {
		m := straightRoadMap(3)
		cfg := SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8}
		sess := NewSession(m, cfg, nil, LootGenConfig{}, rand.New(rand.NewSource(1)), testLog())

		dogID, dog := sess.AddDog("Tim")
		dog.Position = geom.Position{X: 9, Y: 0}
		_ = sess.SetMove(dogID, "R")

		Convey("a tick that overshoots the end clamps position and zeroes speed", func() {
			sess.Tick(2 * time.Second)

			So(dog.Position.X, ShouldEqual, 10)
			So(dog.Speed.X, ShouldEqual, 0)
		})
	})
}

func TestSessionAddDogRespectsSpawnConfig(t *testing.T) {
	m := straightRoadMap(3)
	cfg := SessionConfig{CharactersSpeed: 3, BagCapacity: 3, MaxPlayers: 8, RandomizeSpawn: false}
	sess := NewSession(m, cfg, nil, LootGenConfig{}, rand.New(rand.NewSource(1)), testLog())

	_, dog := sess.AddDog("Tim")
	if dog.Position != (geom.Position{X: 0, Y: 0}) {
		t.Errorf("expected deterministic spawn at road start, got %v", dog.Position)
	}
}
