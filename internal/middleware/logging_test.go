// internal/middleware/logging_test.go
package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMiddlewareRecordsRequest(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	h := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, http.MethodPost, entry.Data["method"])
	assert.Equal(t, "/login", entry.Data["path"])
}

func TestLogConnectCarriesConnID(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	id := uuid.New()

	LogConnect(logger, id, "10.0.0.1:50000")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "client connected", entry.Message)
	assert.Equal(t, id, entry.Data["conn"])
	assert.Equal(t, "10.0.0.1:50000", entry.Data["remote"])
}

func TestLogDisconnectErrorField(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	id := uuid.New()

	LogDisconnect(logger, id, "10.0.0.1:50000", nil)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, id, entry.Data["conn"])
	_, hasErr := entry.Data["error"]
	assert.False(t, hasErr, "clean close carries no error field")

	cause := errors.New("broken pipe")
	LogDisconnect(logger, id, "10.0.0.1:50000", cause)
	assert.Equal(t, cause, hook.LastEntry().Data["error"])
}
