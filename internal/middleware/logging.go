// internal/middleware/logging.go
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogMiddleware logs each HTTP request with its method, path, duration and
// peer address. Only the /login pre-check goes through it; game traffic rides
// the websocket and is logged per connection instead.
func LogMiddleware(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
				"remote":   r.RemoteAddr,
			}).Info("http request")
		})
	}
}

// LogConnect records a client joining. The lobby connection id is the
// identity the coordinator's stores key on, so carrying it here ties the
// transport log to every later state-change line for the same client.
func LogConnect(logger *logrus.Logger, connID uuid.UUID, remoteAddr string) {
	logger.WithFields(logrus.Fields{
		"conn":   connID,
		"remote": remoteAddr,
	}).Info("client connected")
}

// LogDisconnect records a client leaving. A nil err is a clean close; an
// abnormal transport error rides along as a field.
func LogDisconnect(logger *logrus.Logger, connID uuid.UUID, remoteAddr string, err error) {
	fields := logrus.Fields{
		"conn":   connID,
		"remote": remoteAddr,
	}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("client disconnected")
}
