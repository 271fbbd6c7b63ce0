package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into dst. It writes a 400 and returns false
// when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid request body"
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			msg = "request body too large"
		} else if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		respond.Error(w, http.StatusBadRequest, respond.CodeBadRequest, msg)
		return false
	}
	return true
}

// pathUUID parses the named chi URL parameter. It writes a 404 and returns
// false for a malformed id so that probing ids behaves like a missing row.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt returns the integer query parameter or def when absent or
// malformed.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// queryUUID returns the UUID query parameter. ok is false when the value is
// present but malformed.
func queryUUID(r *http.Request, name string) (id *uuid.UUID, ok bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(v)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
