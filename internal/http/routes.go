package http

import (
	"time"

	"taskmanager/internal/config"
	"taskmanager/internal/http/handlers"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	h := handlers.NewHandler(db, tokens)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no auth, no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	auth := middleware.Auth(tokens)
	admin := middleware.RequireAdmin()

	loginRL := middleware.RedisRateLimit(cfg.LoginRateLimit,
		time.Duration(cfg.LoginRateWindow)*time.Second)

	// Public
	r.POST("/login", loginRL, h.Login)
	r.GET("/predefined-users", h.PredefinedUsers)

	// Any authenticated user
	r.GET("/tasks", auth, h.ListTasks)
	r.GET("/tasks/:id", auth, h.GetTask)
	r.POST("/tasks", auth, h.CreateTask)
	r.PUT("/tasks/:id", auth, h.UpdateTask)
	r.DELETE("/tasks/:id", auth, h.DeleteTask)

	r.GET("/profile", auth, h.Profile)
	r.GET("/me", auth, h.Profile)
	r.PUT("/users/me", auth, h.UpdateProfile)

	// Admin only; auth runs first so a bad token is always 401, not 403
	r.GET("/users", auth, admin, h.ListUsers)
	r.GET("/users/role/:role", auth, admin, h.ListUsersByRole)
	r.DELETE("/users/:username", auth, admin, h.DeleteUser)
}
