package game

// sessionManager is the multimap map_id -> sessions, least-loaded join.
// It holds no lock of its own: every call happens under Game's
// embedded mutex.
type sessionManager struct {
	byMap map[string][]*Session
}

func newSessionManager() *sessionManager {
	return &sessionManager{byMap: make(map[string][]*Session)}
}

// join returns an existing session for mapID with room for another
// dog, preferring the least-loaded one (earliest-created breaks
// ties), or creates a new one via newSession if none has room.
func (sm *sessionManager) join(mapID string, maxPlayers int, newSession func() *Session) *Session {
	sessions := sm.byMap[mapID]

	var best *Session
	for _, sess := range sessions {
		if sess.DogCount() >= maxPlayers {
			continue
		}
		if best == nil || sess.DogCount() < best.DogCount() {
			best = sess
		}
	}
	if best != nil {
		return best
	}

	sess := newSession()
	sm.byMap[mapID] = append(sm.byMap[mapID], sess)
	return sess
}

// append adds an already-built session under mapID, used by snapshot
// restore to reinstall sessions without going through join's
// least-loaded selection.
func (sm *sessionManager) append(mapID string, sess *Session) {
	sm.byMap[mapID] = append(sm.byMap[mapID], sess)
}

// allSessions returns every session across every map, in no defined
// order (Go map iteration order is not guaranteed, so callers needing
// determinism, like the tick loop, should sort the result).
func (sm *sessionManager) allSessions() []*Session {
	var all []*Session
	for _, sessions := range sm.byMap {
		all = append(all, sessions...)
	}
	return all
}
