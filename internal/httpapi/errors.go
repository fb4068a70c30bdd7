// Package httpapi is the thin HTTP adapter over the core game:
// routing, request auth, JSON encoding, and static file serving. It
// holds no simulation logic of its own.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// apiError carries a machine code, an HTTP status, and a message, the
// shape of response::basic_json_body::bad_response in the source.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

var (
	errInvalidArgument = func(msg string) *apiError { return &apiError{http.StatusBadRequest, "invalidArgument", msg} }
	errInvalidMethod   = func(msg string) *apiError { return &apiError{http.StatusMethodNotAllowed, "invalidMethod", msg} }
	errInvalidToken    = func(msg string) *apiError { return &apiError{http.StatusUnauthorized, "invalidToken", msg} }
	errUnknownToken    = func(msg string) *apiError { return &apiError{http.StatusUnauthorized, "unknownToken", msg} }
	errMapNotFound     = func(msg string) *apiError { return &apiError{http.StatusNotFound, "mapNotFound", msg} }
	errBadRequest      = func(msg string) *apiError { return &apiError{http.StatusBadRequest, "badRequest", msg} }
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, e *apiError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: e.Code, Message: e.Message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
