package main

import (
	"log"

	"go.uber.org/zap"

	"projectpulse/config"
	"projectpulse/internal/handler"
	"projectpulse/internal/httpserver"
	"projectpulse/internal/repository"
	"projectpulse/internal/service"
	"projectpulse/internal/service/activity"
	"projectpulse/internal/service/health"
	"projectpulse/pkg/db"
	"projectpulse/pkg/mq"
)

func main() {
	// Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn, logger)
	checkinRepo := repository.NewCheckinRepository(dbConn)
	feedbackRepo := repository.NewFeedbackRepository(dbConn)
	riskRepo := repository.NewRiskRepository(dbConn)

	// Init Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	projectService := service.NewProjectService(projectRepo, userRepo, publisher, logger)
	checkinService := service.NewCheckinService(checkinRepo, publisher, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, publisher, logger)
	riskService := service.NewRiskService(riskRepo, publisher, logger)

	healthService := health.NewService(projectRepo, checkinRepo, feedbackRepo, health.Options{
		LookbackDays: cfg.Health.LookbackDays,
		SampleLimit:  cfg.Health.SampleLimit,
		BatchWorkers: cfg.Health.BatchWorkers,
	}, logger)

	activityService := activity.NewService(checkinRepo, feedbackRepo, riskRepo, activity.Options{
		DefaultLimit:    cfg.Activity.DefaultLimit,
		FetchMultiplier: cfg.Activity.FetchMultiplier,
	}, logger)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userRepo)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	checkinHandler := handler.NewCheckinHandler(checkinService, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	riskHandler := handler.NewRiskHandler(riskService, logger)
	healthHandler := handler.NewHealthHandler(healthService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		userHandler,
		projectHandler,
		checkinHandler,
		feedbackHandler,
		riskHandler,
		healthHandler,
		activityHandler,
		cfg.JWT.Secret,
		dbConn,
	)

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
