package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"projectpulse/internal/handler"
	"projectpulse/internal/model"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	checkinHandler *handler.CheckinHandler,
	feedbackHandler *handler.FeedbackHandler,
	riskHandler *handler.RiskHandler,
	healthHandler *handler.HealthHandler,
	activityHandler *handler.ActivityHandler,
	jwtSecret string,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	// Liveness / readiness
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/users", userHandler.ListUsers)

		auth.GET("/projects", projectHandler.ListProjects)
		auth.POST("/projects", RequireRole(model.RoleAdmin), projectHandler.CreateProject)
		auth.GET("/projects/:id", projectHandler.GetProject)
		auth.PUT("/projects/:id", RequireRole(model.RoleAdmin), projectHandler.UpdateProject)
		auth.DELETE("/projects/:id", RequireRole(model.RoleAdmin), projectHandler.DeleteProject)

		auth.GET("/checkins", checkinHandler.ListCheckins)
		auth.POST("/checkins", checkinHandler.SubmitCheckin)

		auth.GET("/feedback", feedbackHandler.ListFeedback)
		auth.POST("/feedback", feedbackHandler.SubmitFeedback)

		auth.GET("/risks", riskHandler.ListRisks)
		auth.POST("/risks", riskHandler.ReportRisk)

		auth.GET("/health", healthHandler.GetHealth)
		auth.POST("/health", healthHandler.RecomputeAll)

		auth.GET("/activity", activityHandler.GetActivity)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
