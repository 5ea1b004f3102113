package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"projectpulse/config"
	"projectpulse/internal/mqhandler"
	"projectpulse/internal/repository"
	"projectpulse/internal/service/health"
	"projectpulse/internal/util"
	"projectpulse/pkg/db"
	"projectpulse/pkg/mq"
	redisclient "projectpulse/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting worker service...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	logger.Info("Database connection established")

	// Init Repositories
	projectRepo := repository.NewProjectRepository(dbConn, logger)
	checkinRepo := repository.NewCheckinRepository(dbConn)
	feedbackRepo := repository.NewFeedbackRepository(dbConn)

	healthService := health.NewService(projectRepo, checkinRepo, feedbackRepo, health.Options{
		LookbackDays: cfg.Health.LookbackDays,
		SampleLimit:  cfg.Health.SampleLimit,
		BatchWorkers: cfg.Health.BatchWorkers,
	}, logger)

	recomputeHandler := mqhandler.NewRecomputeHandler(healthService, deduper, logger)

	// (1) Consumer for checkin events
	logger.Info("Initializing checkin consumer", zap.String("queue", "checkin.created.health.q"))
	consumerCheckin, err := mq.NewConsumer(cfg.MQ.URL, "checkin.created.health.q", mq.EventCheckinCreated, logger)
	if err != nil {
		logger.Fatal("failed to init checkin consumer", zap.Error(err))
	}
	consumerCheckin.SetHandler(recomputeHandler.HandleCheckinCreated)
	go func() {
		logger.Info("Starting checkin consumer")
		if err := consumerCheckin.StartConsuming(); err != nil {
			logger.Fatal("checkin consumer failed", zap.Error(err))
		}
	}()
	defer consumerCheckin.Close()

	// (2) Consumer for feedback events
	logger.Info("Initializing feedback consumer", zap.String("queue", "feedback.created.health.q"))
	consumerFeedback, err := mq.NewConsumer(cfg.MQ.URL, "feedback.created.health.q", mq.EventFeedbackCreated, logger)
	if err != nil {
		logger.Fatal("failed to init feedback consumer", zap.Error(err))
	}
	consumerFeedback.SetHandler(recomputeHandler.HandleFeedbackCreated)
	go func() {
		logger.Info("Starting feedback consumer")
		if err := consumerFeedback.StartConsuming(); err != nil {
			logger.Fatal("feedback consumer failed", zap.Error(err))
		}
	}()
	defer consumerFeedback.Close()

	// (3) Consumer for risk events
	logger.Info("Initializing risk consumer", zap.String("queue", "risk.created.health.q"))
	consumerRisk, err := mq.NewConsumer(cfg.MQ.URL, "risk.created.health.q", mq.EventRiskCreated, logger)
	if err != nil {
		logger.Fatal("failed to init risk consumer", zap.Error(err))
	}
	consumerRisk.SetHandler(recomputeHandler.HandleRiskCreated)
	go func() {
		logger.Info("Starting risk consumer")
		if err := consumerRisk.StartConsuming(); err != nil {
			logger.Fatal("risk consumer failed", zap.Error(err))
		}
	}()
	defer consumerRisk.Close()

	// Periodic full recompute keeps scores fresh for projects with no
	// recent submissions (their windows keep sliding).
	interval := time.Duration(cfg.Health.RecomputeEvery) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Worker service started", zap.Duration("batch_interval", interval))

	for range ticker.C {
		results, err := healthService.RecomputeAll(context.Background())
		if err != nil {
			logger.Error("Scheduled batch recompute failed", zap.Error(err))
			continue
		}

		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
			}
		}
		logger.Info("Scheduled batch recompute finished",
			zap.Int("projects", len(results)),
			zap.Int("failed", failed),
		)
	}
}
