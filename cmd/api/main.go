package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lottopantera/draw-engine/api/routes"
	"github.com/lottopantera/draw-engine/internal/broadcast"
	"github.com/lottopantera/draw-engine/internal/config"
	"github.com/lottopantera/draw-engine/internal/handlers"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	mongorepo "github.com/lottopantera/draw-engine/internal/repositories/mongodb"
	"github.com/lottopantera/draw-engine/internal/services"
	"github.com/lottopantera/draw-engine/internal/utils"
	"github.com/lottopantera/draw-engine/pkg/mongodb"
	"github.com/lottopantera/draw-engine/pkg/renderer"
	"github.com/lottopantera/draw-engine/pkg/telegram"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	location, err := time.LoadLocation(cfg.Draw.Timezone)
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.Draw.Timezone, "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var templateRepo repositories.TemplateRepository = mongorepo.NewTemplateRepository(db)
	var drawRepo repositories.DrawRepository = mongorepo.NewDrawRepository(db)
	var auditRepo repositories.AuditRepository = mongorepo.NewAuditRepository(db)
	var pauseRepo repositories.PauseRepository = mongorepo.NewPauseRepository(db)
	var systemConfigRepo repositories.SystemConfigRepository = mongorepo.NewSystemConfigRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Outbound clients and event fan-out
	telegramClient := telegram.NewClient(cfg)
	rendererClient := renderer.NewClient(cfg)

	// The public channel only sees final results; preselect activity stays on
	// the admin dashboard stream.
	telegramSink := broadcast.SinkFunc(func(ctx context.Context, event models.NotificationEvent) error {
		if event.Kind != models.EventPublished {
			return nil
		}
		return telegramClient.Send(ctx, event)
	})

	sinkTimeout := time.Duration(cfg.Telegram.TimeoutSecs) * time.Second
	broadcaster := broadcast.NewBroadcaster(sinkTimeout, telegramSink)
	hub := broadcast.NewHub(broadcaster)

	// Services
	pauseService := services.NewPauseService(pauseRepo)
	systemConfigService := services.NewSystemConfigService(systemConfigRepo)
	templateService := services.NewTemplateService(templateRepo, drawRepo, auditRepo)
	generatorService := services.NewGeneratorService(templateRepo, drawRepo, auditRepo, pauseService, systemConfigService)
	drawService := services.NewDrawService(
		drawRepo,
		templateRepo,
		auditRepo,
		broadcaster,
		rendererClient,
		systemConfigService,
		time.Duration(cfg.Draw.CutoffMinutes)*time.Minute,
		time.Duration(cfg.Renderer.TimeoutSecs)*time.Second,
	)
	auditService := services.NewAuditService(auditRepo)
	authService := services.NewAuthService(adminUserRepo, cfg)

	// Handlers
	handlerSet := &routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Template: handlers.NewTemplateHandler(templateService),
		Draw:     handlers.NewDrawHandler(drawService, generatorService, location),
		Audit:    handlers.NewAuditHandler(auditService),
		Pause:    handlers.NewPauseHandler(pauseService, location),
		System:   handlers.NewSystemHandler(systemConfigService),
		Hub:      hub,
	}

	router := routes.SetupRouter(cfg, handlerSet)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Background drivers
	driverCtx, stopDrivers := context.WithCancel(context.Background())
	go runCloseScan(driverCtx, drawService, location, time.Duration(cfg.Draw.ScanIntervalSeconds)*time.Second)
	go runDailyGeneration(driverCtx, generatorService, location)

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	stopDrivers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	hub.Close()
	broadcaster.Close()

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

// runCloseScan walks due draws on a fixed cadence so that draws close on time
// even when no admin is active.
func runCloseScan(ctx context.Context, drawService services.DrawService, location *time.Location, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().In(location)
			closed, err := drawService.ScanAndClose(ctx, now)
			if err != nil {
				slog.Error("Close scan failed", "error", err)
				continue
			}
			if closed > 0 {
				slog.Info("Close scan finished", "closed", closed)
			}
		}
	}
}

// runDailyGeneration generates today's schedule at startup and again shortly
// after each local midnight. Generation is idempotent, so overlapping runs
// converge to the same schedule.
func runDailyGeneration(ctx context.Context, generator services.GeneratorService, location *time.Location) {
	generate := func() {
		date := utils.StartOfDay(time.Now().In(location))
		draws, err := generator.GenerateForDate(ctx, date, "system")
		if err != nil {
			slog.Error("Daily generation failed", "date", date.Format("2006-01-02"), "error", err)
			return
		}
		slog.Info("Daily generation finished", "date", date.Format("2006-01-02"), "created", len(draws))
	}

	generate()

	for {
		now := time.Now().In(location)
		next := utils.StartOfDay(now).AddDate(0, 0, 1).Add(time.Minute)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			generate()
		}
	}
}
