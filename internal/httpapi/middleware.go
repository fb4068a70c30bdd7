package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"dogworld-server/internal/players"
)

type ctxKey int

const playerCtxKey ctxKey = iota

// authMiddleware resolves the bearer token and attaches the player to
// the request context, or fails the request with invalidToken /
// unknownToken before the handler runs. Lookup happens under Game's
// mutex so it observes the authoritative player registry.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) || len(header) <= len(prefix) {
			writeError(w, errInvalidToken("missing or malformed Authorization header"))
			return
		}
		token := players.Token(strings.TrimPrefix(header, prefix))

		s.game.Lock()
		player, ok := s.players.Find(token)
		s.game.Unlock()
		if !ok {
			writeError(w, errUnknownToken("token not found"))
			return
		}

		ctx := context.WithValue(r.Context(), playerCtxKey, player)
		next(w, r.WithContext(ctx))
	}
}

func playerFromContext(r *http.Request) *players.Player {
	p, _ := r.Context().Value(playerCtxKey).(*players.Player)
	return p
}

// accessLog logs method, path, status, and duration for every
// request, tagged with a per-request UUID for correlation.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		s.log.WithFields(map[string]interface{}{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"duration":   time.Since(start).String(),
		}).Info("request completed")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
