// Learning platform API server.
//
// @title           Learning Platform API
// @version         1.0
// @description     Courses, instructors and rating-consistent reviews.
//
// @securityDefinitions.apikey BearerAuth
// @in     header
// @name   Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/plasturgie/learning-platform/docs"
	"github.com/plasturgie/learning-platform/internal/api"
	"github.com/plasturgie/learning-platform/internal/infrastructure/config"
	mongodb "github.com/plasturgie/learning-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/plasturgie/learning-platform/internal/infrastructure/db/redis"
	"github.com/plasturgie/learning-platform/internal/infrastructure/queue"
	"github.com/plasturgie/learning-platform/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer func() { _ = rdb.Close() }()

	users := mongodb.NewUserRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	instructors := mongodb.NewInstructorRepository(db)
	courses := mongodb.NewCourseRepository(db)
	audits := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, reviews, instructors, courses, audits); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap")
	}

	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, audits, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Options{
		Mongo:     db,
		Redis:     rdb,
		Auditor:   dispatcher,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		Log:       log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
