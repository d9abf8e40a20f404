// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tictactoe-backend/internal/game"
)

// Rdb is the global Redis client. Connect it once at application startup;
// when it stays nil the match history queue is simply disabled.
var Rdb *redis.Client

// DefaultQueueName is the Redis list (queue) name for finished-match records.
var DefaultQueueName = "tictactoe_matches"

// MatchRecord holds the minimal info describing a finished match for an
// out-of-process history consumer. It is never read back by the coordinator.
type MatchRecord struct {
	SessionID uuid.UUID  `json:"session_id"`
	XName     string     `json:"x_name"`
	OName     string     `json:"o_name"`
	Winner    string     `json:"winner"`
	Board     game.Board `json:"board"`
	Timestamp int64      `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// Enabled reports whether the match history queue is available.
func Enabled() bool {
	return Rdb != nil
}

// PublishMatchRecord serializes the given record to JSON, then pushes it to
// the Redis queue. This does not block the calling logic beyond a quick
// network send.
func PublishMatchRecord(ctx context.Context, record MatchRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal MatchRecord: %w", err)
	}

	queueName := getEnv("MATCH_QUEUE_NAME", DefaultQueueName)
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
