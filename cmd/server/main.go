package main

import (
	"log/slog"
	"net/http"
	"os"

	"dq-backend/internal/api"
	"dq-backend/internal/config"
	"dq-backend/internal/logging"
	"dq-backend/internal/quality"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	rules, err := config.LoadRuleSet(cfg.RulesFile)
	if err != nil {
		slog.Error("failed to load rule set", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(cfg, quality.NewService(), rules)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler.RegisterRoutes(r)

	slog.Info("starting data quality API", "port", cfg.Port, "upload_dir", cfg.UploadDir)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
