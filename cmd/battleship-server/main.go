// Command battleship-server runs the matchmaker, session registry, and
// reaper described in spec §4.5/§4.6, grounded in the teacher's cmd/main.go
// startup sequence (env/stage setup, goroutines for each background task,
// then a blocking accept loop) but adapted from an HTTP+websocket upgrade
// server to a raw TCP listener.
package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lrivas/battleship-tcp/db"
	"github.com/lrivas/battleship-tcp/db/sqlc"
	"github.com/lrivas/battleship-tcp/internal/analytics"
	"github.com/lrivas/battleship-tcp/internal/matchmaker"
	"github.com/lrivas/battleship-tcp/internal/registry"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: battleship-server <bind-ip> <port> <log-path>")
		os.Exit(1)
	}
	bindIP := os.Args[1]
	portArg := os.Args[2]
	logPath := os.Args[3]

	port, err := strconv.Atoi(portArg)
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintln(os.Stderr, "usage: battleship-server <bind-ip> <port> <log-path>: port must be 1-65535")
		os.Exit(1)
	}

	if os.Getenv("STAGE") != "prod" {
		_ = godotenv.Load(".env")
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	rec := buildAnalyticsRecorder(bindIP, logger)

	addr := net.JoinHostPort(bindIP, portArg)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalf("listen %s: %v", addr, err)
	}
	logger.Printf("listening on %s", addr)

	reg := registry.New(logger)
	stop := make(chan struct{})
	go reg.Run(stop)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received %v, stopping acceptor", sig)
		_ = listener.Close()
	}()

	acceptor := matchmaker.New(listener, reg, rec, logger)
	acceptor.Run()

	// The acceptor only returns once the listener is closed. In-flight
	// sessions keep running on their own goroutines; Wait blocks until every
	// one of them has returned from Run() before the final reaper pass, so
	// "in-flight sessions run to completion" (spec §5) is an actual
	// guarantee rather than a race against process exit.
	logger.Println("waiting for in-flight sessions to finish")
	acceptor.Wait()
	reg.ReapOnce()
	close(stop)
	logger.Println("shutdown complete")
}

// buildAnalyticsRecorder connects to Postgres when DATABASE_URL is set and
// falls back to analytics.Noop otherwise (spec.md scopes persistence out
// entirely; a database is optional infrastructure for this deployment, not
// a hard requirement).
func buildAnalyticsRecorder(bindIP string, logger *log.Logger) analytics.Recorder {
	psqlURL := os.Getenv("DATABASE_URL")
	if psqlURL == "" {
		logger.Println("DATABASE_URL not set, analytics disabled")
		return analytics.Noop{}
	}
	sqlDB := db.MustConnectToDb(logger, psqlURL)
	dbManager := sqlc.NewDbManager(sqlc.New(sqlDB))
	return analytics.NewPostgres(dbManager.Analytics, bindIP, logger)
}
