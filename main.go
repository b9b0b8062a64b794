package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/config"
	"github.com/Ritesh010/admin/internal/logger"
	"github.com/Ritesh010/admin/internal/router"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Str("api_base_url", cfg.APIBaseURL).Msg("Starting admin panel")

	sessions := session.NewStore(cfg.SessionSecret, log)
	client := api.New(cfg.APIBaseURL, log)

	templates := views.NewTemplateCache()
	if err := templates.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	r := router.SetupRouter(cfg, sessions, client, templates, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
