package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mdc-internships/interntracker/docs"
	"github.com/mdc-internships/interntracker/internal/api"
	"github.com/mdc-internships/interntracker/internal/core/service"
	"github.com/mdc-internships/interntracker/internal/infrastructure/config"
	mongodb "github.com/mdc-internships/interntracker/internal/infrastructure/db/mongo"
	redisdb "github.com/mdc-internships/interntracker/internal/infrastructure/db/redis"
	"github.com/mdc-internships/interntracker/pkg/logger"
)

// @title        Intern Tracker API
// @version      1.0
// @description  Time clock, activity log, and intern directory for the internship program.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.NewTimeEntryRepository(db, log).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("time entry indexes failed")
	}
	if err := mongodb.NewProjectRepository(db, log).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("project indexes failed")
	}
	if err := mongodb.NewInternRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("intern indexes failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// First run installs the starter onboarding checklist.
	todoService := service.NewTodoService(mongodb.NewTodoRepository(db), log)
	if err := todoService.SeedIfEmpty(ctx); err != nil {
		log.Error().Err(err).Msg("todo seed failed")
	}

	e := api.NewRouter(db, rdb, cfg)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
