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

	"github.com/yeremiapane/table-order/config"
	"github.com/yeremiapane/table-order/database"
	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/router"
	"github.com/yeremiapane/table-order/services"
	"github.com/yeremiapane/table-order/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.EnsureJWTSecret() {
		utils.InfoLogger.Warn("JWT_SECRET not set, using the development secret")
	}
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if cfg.SeedData {
		if err := database.Seed(db, time.Now()); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed data: %v", err)
		}
	}

	admin, err := models.NewAdminUser(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		utils.ErrorLogger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blacklist := utils.NewTokenBlacklist()
	go blacklist.RunCleanup(ctx, time.Hour)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, blacklist)

	publisher := newPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			utils.ErrorLogger.Printf("Failed to close event publisher: %v", err)
		}
	}()

	r := router.SetupRouter(cfg, router.NewDeps(db, cfg, admin, tokens, publisher))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
	utils.InfoLogger.Println("Server exited")
}

// newPublisher falls back to a no-op publisher when Kafka is not configured
// or unreachable at startup.
func newPublisher(cfg *config.Config) services.EventPublisher {
	if !cfg.KafkaEnabled() {
		return services.NopPublisher{}
	}
	publisher, err := services.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		utils.ErrorLogger.Printf("Order events disabled: %v", err)
		return services.NopPublisher{}
	}
	return publisher
}
