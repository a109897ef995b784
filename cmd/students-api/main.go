// main is the entry point of the student functions' HTTP host.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file optional, .env, environment)
//  2. Initialise the logger
//  3. Open and ping the database
//  4. Register the function routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	ENV=dev DATABASE_DSN=./storage/students.db go run ./cmd/students-api
//
// or with a config file:
//
//	go run ./cmd/students-api --config=config/local.yaml
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-functions/internal/config"
	"github.com/aanand-mishra/student-functions/internal/http/router"
	"github.com/aanand-mishra/student-functions/internal/logger"
	"github.com/aanand-mishra/student-functions/internal/storage/sqldb"
	"github.com/aanand-mishra/student-functions/internal/student"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting student functions",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Database.Driver),
		slog.Bool("function_key", cfg.FunctionKey != ""),
	)

	if cfg.FunctionKey == "" && cfg.Env != "dev" {
		log.Warn("no function key configured: functions are open to anyone")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := sqldb.New(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	svc := student.New(db, log)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(svc, cfg.FunctionKey, log),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected, so we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
