package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/api"
	"github.com/Marga-Ghale/synergysphere-backend/internal/api/handlers"
	"github.com/Marga-Ghale/synergysphere-backend/internal/config"
	"github.com/Marga-Ghale/synergysphere-backend/internal/cron"
	"github.com/Marga-Ghale/synergysphere-backend/internal/db"
	"github.com/Marga-Ghale/synergysphere-backend/internal/email"
	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/seed"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	pg, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pg.Close()

	repos := repository.NewRepositories(pg.Pool, pg.SQL)
	log.Println("📦 Repositories initialized")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============================================
	// Realtime: hub plus local or Redis event bus
	// ============================================
	hub := socket.NewHub()
	go hub.Run(ctx)

	var bus socket.Publisher = socket.NewLocalBus(hub)
	realtime := "local"
	if cfg.RedisURL != "" {
		redisDB, err := db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (events stay on this instance)", err)
		} else {
			defer redisDB.Close()
			redisBus := socket.NewRedisBus(redisDB, hub)
			go redisBus.Run(ctx)
			bus = redisBus
			realtime = "redis"
			log.Println("⚡ Redis event bus enabled")
		}
	}
	broadcaster := socket.NewBroadcaster(bus)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret, cfg.AuthRequired, cfg.AllowedOrigins)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Email (optional)
	// ============================================
	var mailer notification.Mailer
	emailSvc := newEmailService(cfg)
	if emailSvc.IsConfigured() {
		emailSvc.StartQueue(2)
		defer emailSvc.StopQueue()
		mailer = emailSvc
		log.Println("📧 Email service initialized")
	} else {
		log.Println("⚠️  Email not configured (SMTP_HOST not set)")
	}

	notificationSvc := notification.NewService(broadcaster, mailer, cfg.FrontendURL)

	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		NotifSvc:    notificationSvc,
		Broadcaster: broadcaster,
	})
	log.Println("✨ All services initialized")

	if !cfg.IsProduction() {
		if err := seed.SeedData(ctx, repos); err != nil {
			log.Printf("⚠️ [Seed] %v", err)
		}
	}

	scheduler := cron.NewScheduler(repos.TaskRepo, notificationSvc)
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouter(api.RouterDeps{
		Config:   cfg,
		Auth:     services.Auth,
		Handlers: handlers.NewHandlers(services),
		Health: handlers.NewHealthHandler(handlers.HealthDeps{
			DB:           pg,
			Users:        services.User,
			Hub:          hub,
			Realtime:     realtime,
			EmailEnabled: mailer != nil,
		}),
		WebSocket: wsHandler.HandleWebSocket,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

func newEmailService(cfg *config.Config) *email.Service {
	return email.NewService(&email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		UseTLS:   cfg.SMTPUseTLS,
	})
}
