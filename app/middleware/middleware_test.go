package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("POST", "/test", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusCreated, rw.Code)
	assert.NotEmpty(t, rw.Header().Get(RequestIDHeader))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/test", line["path"])
	assert.Equal(t, float64(http.StatusCreated), line["status"])
	assert.Equal(t, float64(2), line["size"])
	assert.Equal(t, rw.Header().Get(RequestIDHeader), line["req_id"])
	assert.Contains(t, line, "duration")
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(zerolog.New(&buf))(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})))

	req := httptest.NewRequest("GET", "/test", nil)
	rw := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rw, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rw.Code)
	assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
	assert.Contains(t, rw.Body.String(), "Internal Server Error")
	assert.Contains(t, buf.String(), "test panic")
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/api/posts", "/", "/x"} {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, req)
			assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
		})
	}
}
