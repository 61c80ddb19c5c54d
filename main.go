// main.go

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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toolmarket-backend/controllers"
	"toolmarket-backend/database"
	"toolmarket-backend/logger"
	"toolmarket-backend/repository"
	"toolmarket-backend/routes"
	"toolmarket-backend/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to MongoDB
	client, db, err := database.Connect(context.Background(), cfg.MongoURI(), cfg.DBName)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.DBName))

	tokens := services.NewTokenService(cfg.AccessTokenSecret, cfg.TokenTTL)
	stripeService := services.NewStripeService(cfg.StripeSecretKey)

	r := routes.NewRouter(routes.Options{
		Logger:         log,
		Verifier:       tokens,
		AllowedOrigins: cfg.AllowedOrigins(),
		RequestTimeout: cfg.RequestTimeout,
	}, routes.Controllers{
		Auth:    controllers.NewAuthController(tokens),
		Tools:   controllers.NewToolController(repository.NewToolRepository(db, log), log),
		Users:   controllers.NewUserController(repository.NewUserRepository(db, log), tokens),
		Orders:  controllers.NewOrderController(repository.NewOrderRepository(db, log)),
		Content: controllers.NewContentController(repository.NewReviewRepository(db, log), repository.NewBlogRepository(db, log)),
		Payment: controllers.NewPaymentController(stripeService),
		Health:  controllers.NewHealthController(database.NewPinger(client)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Toolmarket app listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := database.Close(client); err != nil {
		log.Error("Database disconnect failed", zap.Error(err))
	}
	log.Info("Stopped")
}
