package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/config"
	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/planner/internal/notify"
	"github.com/Nixie-Tech-LLC/planner/internal/publish"
	"github.com/Nixie-Tech-LLC/planner/internal/redis"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := InitStore(ctx, cfg)

	var opts []service.Option
	if cfg.RedisAddress != "" {
		if err := redis.InitRedis(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword); err != nil {
			log.Error().Err(err).Msg("redis unavailable, calendar windows will not be cached")
		} else {
			opts = append(opts, service.WithCache(redis.NewWindowCache(redis.Rdb, cfg.CacheTTL)))
		}
	}

	if cfg.MQTTBrokerURL != "" {
		notifier, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, "planner-"+uuid.NewString(), cfg.MQTTTopic)
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, change notifications disabled")
		} else {
			defer notifier.Close()
			opts = append(opts, service.WithNotifier(notifier))
		}
	}

	svc := service.NewCalendarService(store, opts...)
	publisher := publish.NewPublisher(svc, InitStorage(cfg), cfg.PublishName)

	if cfg.PublishCron != "" {
		scheduler, err := publish.Schedule(cfg.PublishCron, publisher)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to schedule feed publication")
		}
		defer scheduler.Stop()
	}

	// set up gin router
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	RegisterRoutes(r, cfg, svc, publisher)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if db.DB != nil {
		_ = db.DB.Close()
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Development() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
