package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

func TestLoggingWritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	h := Logging(logger.NewWithWriter(&buf, "info"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/panel/save", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "/panel/save", line["path"])
	assert.Equal(t, float64(503), line["status"])
}
