// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"jeevan-api-server/config"
	"jeevan-api-server/internal/ai"
	"jeevan-api-server/internal/api/routes"
	"jeevan-api-server/internal/auth"
	"jeevan-api-server/internal/database"
	"jeevan-api-server/internal/logger"
	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/payment"
	"jeevan-api-server/internal/socket"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	zlog, err := logger.New(false)
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer zlog.Sync()

	auth.Init(cfg.JWT.Secret, cfg.JWT.Expiration)

	db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer db.Client().Disconnect(context.Background())

	if err := database.EnsureIndexes(db); err != nil {
		zlog.Fatal("failed to ensure indexes", zap.Error(err))
	}
	if err := database.SeedAdmin(db); err != nil {
		zlog.Fatal("failed to seed admin account", zap.Error(err))
	}

	mail := mailer.New(cfg.SMTP, zlog)
	payments := payment.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, zlog)
	wsHub := socket.NewHub(zlog)

	// The assistant is optional; without an API key the chat endpoints answer
	// 503 and everything else works.
	var assistant *ai.Assistant
	if cfg.Gemini.APIKey != "" {
		assistant, err = ai.NewAssistant(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			zlog.Fatal("failed to create assistant", zap.Error(err))
		}
	} else {
		zlog.Warn("GEMINI_API_KEY not set, assistant endpoints disabled")
	}

	router := routes.SetupRouter(cfg, db, mail, assistant, payments, wsHub, zlog)

	zlog.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
