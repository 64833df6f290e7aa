package controllers

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"postboard/app/models"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/sha3"
)

// maxBodyBytes bounds request bodies; the largest valid post is 10,000
// characters of content plus a 200 character title.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []models.FieldError `json:"fields,omitempty"`
}

// decodeJSON reads a single JSON value from the body into dst. Malformed
// bodies, mistyped fields and trailing data come back as a
// *models.ValidationError.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return models.NewDecodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.NewDecodeError(errors.New("unexpected data after JSON body"))
	}
	return nil
}

func sendJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed to write response")
	}
}

// sendCachedJSON writes a 200 response with an ETag computed over the body
// and answers 304 when the client already holds that representation.
func sendCachedJSON(w http.ResponseWriter, r *http.Request, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		sendError(w, r, err)
		return
	}
	body = append(body, '\n')

	tag := etag(body)
	w.Header().Set("ETag", tag)
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed to write response")
	}
}

func etag(body []byte) string {
	sum := sha3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

// sendError maps an error onto its HTTP status: validation failures are 400,
// missing posts 404 and everything else is logged and reported as 500.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	var nf *models.PostNotFoundError

	switch {
	case errors.As(err, &ve):
		sendJSON(w, r, http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields})
	case errors.As(err, &nf):
		sendJSON(w, r, http.StatusNotFound, errorResponse{Error: nf.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		sendJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}
