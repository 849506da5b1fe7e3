// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"foyer-finance/internal/auth"
	"foyer-finance/internal/config"
	"foyer-finance/internal/demodata"
	"foyer-finance/internal/handler"
	"foyer-finance/internal/middleware"
	"foyer-finance/internal/onboarding"
	"foyer-finance/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-retry"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env facultatif, les variables d'environnement priment
	_ = godotenv.Load()

	cfg := config.MustLoad()

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Connexion à la base impossible", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// La base peut mettre quelques secondes à accepter les connexions au
	// démarrage, notamment sous docker compose
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			slog.Warn("Base indisponible, nouvelle tentative", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.Error("Base injoignable", "error", err)
		os.Exit(1)
	}

	store := postgres.NewStorage(pool)

	tokenService := auth.NewTokenService(cfg)
	generator := demodata.New(store, logger)
	onboardingSvc := onboarding.NewService(store, cfg.AppVersion)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/v1/login", func(c *gin.Context) {
		var req struct {
			UserID string `json:"user_id" binding:"required,uuid"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
			return
		}
		user, err := store.UserByID(context.Background(), req.UserID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		token, err := tokenService.GenerateToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	txHandler := handler.NewTransactionHandler(store)
	accountingHandler := handler.NewAccountingHandler(store)
	eventHandler := handler.NewEventHandler(store)
	demoHandler := handler.NewDemoHandler(generator)
	onboardingHandler := handler.NewOnboardingHandler(onboardingSvc)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.POST("/transactions", txHandler.CreateTransaction)
		v1.GET("/transactions", txHandler.ListMonth)
		v1.PUT("/transactions/:id", txHandler.UpdateTransaction)
		v1.DELETE("/transactions/:id", txHandler.DeleteTransaction)
		v1.GET("/transactions/:id/refunds", txHandler.ListRefunds)

		v1.GET("/members", txHandler.Members)
		v1.GET("/categories", txHandler.Categories)

		v1.GET("/accounting/grid", accountingHandler.Grid)
		v1.GET("/accounting/years", accountingHandler.Years)

		v1.POST("/events", eventHandler.CreateEvent)
		v1.GET("/events", eventHandler.ListEvents)
		v1.GET("/events/day", eventHandler.EventsForDate)
		v1.GET("/events/upcoming", eventHandler.Upcoming)
		v1.GET("/events/stream", eventHandler.Stream)
		v1.PUT("/events/:id", eventHandler.UpdateEvent)
		v1.DELETE("/events/:id", eventHandler.DeleteEvent)
		v1.POST("/events/:id/participants/:user_id", eventHandler.AddParticipant)
		v1.DELETE("/events/:id/participants/:user_id", eventHandler.RemoveParticipant)

		v1.POST("/demo-data", demoHandler.Generate)

		v1.GET("/onboarding", onboardingHandler.Status)
		v1.POST("/onboarding/complete", onboardingHandler.Complete)
	}

	slog.Info("🚀 Serveur démarré", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Le serveur s'est arrêté en erreur", "error", err)
	}
}
