package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dracory/gridbase/shared/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	web.OK(rec, map[string]any{"row": map[string]any{"id": 1}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.NotNil(t, body["row"])
}

func TestOKWithoutExtra(t *testing.T) {
	rec := httptest.NewRecorder()
	web.OK(rec, nil)

	body := decode(t, rec)
	assert.Equal(t, map[string]any{"status": "OK"}, body)
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	web.Fail(rec, http.StatusNotFound, "row not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "row not found"}, decode(t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	web.MethodNotAllowed(rec)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", decode(t, rec)["error"])
}
