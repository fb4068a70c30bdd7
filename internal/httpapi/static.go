package httpapi

import (
	"net/http"
	"path/filepath"
	"strings"
)

// staticHandler serves files under wwwRoot. The request path is
// cleaned as a rooted path before it is joined to wwwRoot, so ".."
// segments are resolved away and cannot reach above wwwRoot; a
// traversal attempt is not answered with 400 here. A cleaned path that
// still contains ".." (possible only inside a file or directory name),
// or a joined path outside wwwRoot, is rejected with 400, and a
// missing file is a plain 404 — neither goes through the JSON error
// envelope, since static serving is explicitly outside the API's error
// taxonomy.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleaned := filepath.Clean("/" + r.URL.Path)
		if strings.Contains(cleaned, "..") {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		full := filepath.Join(s.wwwRoot, cleaned)
		if !strings.HasPrefix(full, filepath.Clean(s.wwwRoot)+string(filepath.Separator)) && full != filepath.Clean(s.wwwRoot) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		http.ServeFile(w, r, full)
	})
}
