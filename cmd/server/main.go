// @title Scheduling Server
// @version 1.0
// @description Multi-tenant appointment scheduling engine. Computes bookable time slots from worker availability and commits bookings under a per-worker distributed lock.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name scheduling
// @tag.description Slot computation and booking commits

// @tag.name availability
// @tag.description Worker weekly availability management

// @tag.name scheduling-config
// @tag.description Tenant scheduling policy

// @tag.name appointment-types
// @tag.description Bookable service catalog

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	scheduling "github.com/unburdy/scheduling-module"
	"github.com/unburdy/scheduling-module/pkg/auth"
	"github.com/unburdy/scheduling-module/pkg/config"
	"github.com/unburdy/scheduling-module/pkg/core"
	"github.com/unburdy/scheduling-module/pkg/database"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	gin.SetMode(cfg.Server.Mode)
	auth.SetJWTSecret(cfg.JWT.Secret)

	db, err := database.ConnectWithAutoCreate(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Router with core middleware
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		corsMiddleware(),
		securityMiddleware(),
	)

	router.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	logger := core.NewLogger()

	moduleCtx := core.ModuleContext{
		DB:       db,
		Router:   router,
		Config:   cfg,
		Logger:   logger,
		Services: core.NewServiceRegistry(),
	}

	registry := core.NewRegistry()
	if err := registry.Register(scheduling.NewCoreModule()); err != nil {
		log.Fatal("Failed to register scheduling module: ", err)
	}

	if err := registry.InitializeAll(moduleCtx); err != nil {
		log.Fatal("Failed to initialize modules: ", err)
	}

	if err := registry.MigrateAll(moduleCtx); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	registry.RegisterRoutes(router.Group("/api/v1"))

	if err := registry.StartAll(context.Background()); err != nil {
		log.Fatal("Failed to start modules: ", err)
	}

	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Scheduling server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: ", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := registry.StopAll(shutdownCtx); err != nil {
		log.Printf("Module shutdown error: %v", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// securityMiddleware adds security headers
func securityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}
