package players

import (
	"github.com/sirupsen/logrus"

	"dogworld-server/internal/game"
)

// Player pairs a token with a non-owning reference to a dog in a
// session. The dog remains owned by its session.
type Player struct {
	Token   Token
	Session *game.Session
	DogID   uint64
}

// Registry is the token -> player mapping: O(1) issuance and lookup.
type Registry struct {
	byToken map[Token]*Player
	log     *logrus.Entry
}

// NewRegistry builds an empty registry.
func NewRegistry(log *logrus.Entry) *Registry {
	return &Registry{byToken: make(map[Token]*Player), log: log}
}

// NewPlayer mints a fresh token and binds it to the given dog in the
// given session.
func (r *Registry) NewPlayer(sess *game.Session, dogID uint64) *Player {
	token := NewToken(r.log)
	p := &Player{Token: token, Session: sess, DogID: dogID}
	r.byToken[token] = p
	return p
}

// Bind installs a player under an already-known token, used by
// snapshot restore to reproduce the exact token -> player bindings
// that existed at save time.
func (r *Registry) Bind(token Token, sess *game.Session, dogID uint64) {
	r.byToken[token] = &Player{Token: token, Session: sess, DogID: dogID}
}

// Find returns the player for token, purging it first if its dog has
// since been removed from its session — dog removal is not otherwise
// implemented, but Find must stay correct if it ever is.
func (r *Registry) Find(token Token) (*Player, bool) {
	p, ok := r.byToken[token]
	if !ok {
		return nil, false
	}
	if _, dogAlive := p.Session.Characters()[p.DogID]; !dogAlive {
		delete(r.byToken, token)
		return nil, false
	}
	return p, true
}

// All returns every bound player, for snapshot capture. Callers must
// not mutate the map.
func (r *Registry) All() map[Token]*Player { return r.byToken }

// Reset discards every binding, used before snapshot restore
// repopulates the registry from scratch.
func (r *Registry) Reset() {
	r.byToken = make(map[Token]*Player)
}
