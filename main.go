package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"voicebook/config"
	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/handlers"
	"voicebook/middleware"
	"voicebook/routes"
	"voicebook/services/assistant"
	"voicebook/services/scheduling"
	"voicebook/services/summary"
	"voicebook/utils"
)

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	// Store backend selection happens here: MongoDB when configured and
	// reachable, local file fallback otherwise.
	repo := appointmentRepo.New(appointmentRepo.SlotCatalog())
	publisher := summary.NewPublisher(config.AppConfig.SummaryFile)

	engine := &scheduling.DefaultEngine{
		Repo:    repo,
		Summary: publisher,
	}
	sessionManager := assistant.NewManager(engine, repo, publisher)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORS())
	router.Use(middleware.RateLimitMiddleware())

	summaryHandler := handlers.NewSummaryHandler(publisher)
	sessionHandler := handlers.NewSessionHandler(sessionManager)
	routes.RegisterRoutes(router, summaryHandler, sessionHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
