/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the workforce simulation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize logger
  3. Initialize SQLite store
  4. Start the run queue
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: wfsim.db)
           Use ":memory:" for in-memory database
  -log     Log mode: "dev" or "prod" (default: dev)
  -queue   Maximum number of pending runs (default: 16)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Cancel the in-flight run (it is stored as failed)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/wfsim.db"

  # Run with in-memory database and JSON logs
  ./server -db=":memory:" -log=prod

SEE ALSO:
  - api/server.go: Router configuration
  - api/queue.go: Run execution
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/workforce-sim/api"
	"github.com/warp/workforce-sim/logger"
	"github.com/warp/workforce-sim/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "wfsim.db", "SQLite database path")
	logMode := flag.String("log", "dev", "Log mode (dev or prod)")
	queueSize := flag.Int("queue", 16, "Maximum number of pending runs")
	flag.Parse()

	log, err := logger.New(*logMode, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal("failed to initialize database", "path", *dbPath, "error", err)
	}
	defer store.Close()

	// Run queue and handler
	queue := api.NewRunQueue(store, log, *queueSize)
	queue.Start()

	handler := api.NewHandler(store, queue, log)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", "addr", fmt.Sprintf("http://localhost:%d", *port), "db", *dbPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	queue.Stop()

	log.Info("server stopped")
}
