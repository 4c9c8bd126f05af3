package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// errMissingIDParam is returned when a path is routed without its id segment.
var errMissingIDParam = errors.New("missing id path parameter")

// DecodeJSON decodes the request body into dst. Fields the target does not
// declare are ignored, so a client may send a full account representation
// to the partial-update endpoint without the extra fields taking effect.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// getPathUUID extracts and parses a UUID path parameter from the request.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, errMissingIDParam
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
