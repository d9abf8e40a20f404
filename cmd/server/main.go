// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"tictactoe-backend/internal/cache"
	"tictactoe-backend/internal/coordinator"
	"tictactoe-backend/internal/handlers"
	"tictactoe-backend/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Match history is opt-in: without REDIS_ADDR the server runs fully
	// in-memory and nothing survives a restart.
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Warnf("match history disabled: %v", err)
		} else {
			logger.Info("match history queue connected")
		}
	}

	coord := coordinator.New(logger)

	mux := http.NewServeMux()

	// name pre-check endpoint
	mux.Handle("/login", middleware.LogMiddleware(logger)(handlers.LoginHandler(coord)))

	// game websocket
	mux.Handle("/", handlers.WSHandler(logger, coord))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
