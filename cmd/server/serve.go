package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/aladhan"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/broadcast"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/config"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/logger"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/metrics"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/mqtt"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/redis"
)

type ServeCmd struct {
	Addr string `help:"Listen address, overrides SERVER_ADDRESS." placeholder:"HOST:PORT"`
}

func (s *ServeCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.ServerAddress = s.Addr
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	hub := broadcast.NewHub(func() (model.NextPrayer, bool) {
		return model.NewNextPrayer(prayer.Resolve(store.GetSchedule(), cfg.Now())), true
	}, collector)
	publishers := []broadcast.Publisher{hub}

	if cfg.RedisAddress != "" {
		rdb, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable at startup, will keep trying on every tick")
		}
		defer rdb.Close()
		publishers = append(publishers, redis.NewNextPrayerCache(rdb, cfg.RedisKey, 2*cfg.BroadcastInterval))
	}

	if cfg.MQTTBrokerURL != "" {
		client, err := mqtt.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			log.Warn().Err(err).Msg("MQTT disabled")
		} else {
			defer mqtt.Disconnect(client)
			publishers = append(publishers, mqtt.NewNextPrayerPublisher(client, cfg.MQTTTopic, time.Minute))
		}
	}

	broadcaster := broadcast.New(prayer.NewTicker(cfg.BroadcastInterval, store.GetSchedule, cfg.Now), collector, publishers...)
	go func() {
		if err := broadcaster.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("broadcaster stopped")
		}
	}()

	limits := newLimits()
	defer limits.stop()

	router := newRouter(routerDeps{
		cfg:       cfg,
		store:     store,
		metrics:   collector,
		registry:  registry,
		hub:       hub,
		templates: loadTemplates(),
		timings: aladhan.NewClient(aladhan.Options{
			BaseURL: cfg.AladhanBaseURL,
			Method:  cfg.AladhanMethod,
		}),
		limits: limits,
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Str("env", cfg.Environment).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newStore(cfg *config.Config) (db.Store, error) {
	seed := db.DefaultSeed()
	seed.DonationGoal = cfg.DonationGoal
	seed.DonationCurrent = cfg.DonationCurrent
	store, err := db.NewMemoryStore(seed, cfg.Now)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return store, nil
}

type limits struct {
	login    *middleware.RateLimiter
	chat     *middleware.RateLimiter
	question *middleware.RateLimiter
}

func newLimits() *limits {
	return &limits{
		login: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Name: "login", Rate: rate.Every(12 * time.Second), Burst: 5,
			IdleTTL: 30 * time.Minute, CleanupInterval: 5 * time.Minute,
		}),
		chat: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Name: "chat", Rate: 1, Burst: 5,
			IdleTTL: 10 * time.Minute, CleanupInterval: 5 * time.Minute,
		}),
		question: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Name: "question", Rate: rate.Every(time.Minute), Burst: 3,
			IdleTTL: 30 * time.Minute, CleanupInterval: 5 * time.Minute,
		}),
	}
}

func (l *limits) stop() {
	l.login.Stop()
	l.chat.Stop()
	l.question.Stop()
}
