package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"

	httptransport "github.com/codigo-hd/helpdesk-service/internal/api/http"
	"github.com/codigo-hd/helpdesk-service/internal/api/http/handlers"
	"github.com/codigo-hd/helpdesk-service/internal/auth"
	"github.com/codigo-hd/helpdesk-service/internal/config"
	"github.com/codigo-hd/helpdesk-service/internal/events"
	"github.com/codigo-hd/helpdesk-service/internal/observability"
	"github.com/codigo-hd/helpdesk-service/internal/persistence"
	"github.com/codigo-hd/helpdesk-service/internal/repository"
	"github.com/codigo-hd/helpdesk-service/internal/service"
	"github.com/codigo-hd/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var geminiClient *genai.Client
	if cfg.AI.GeminiAPIKey != "" {
		geminiClient, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.AI.GeminiAPIKey})
		if err != nil {
			logger.Warn("gemini client unavailable; analysis falls back to heuristics", zap.Error(err))
		}
	}

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		MessageRepo:    messageRepo,
		AttachmentRepo: attachmentRepo,
		DepartmentRepo: departmentRepo,
		Dispatcher:     dispatcher,
	})
	aiService := service.NewAIService(geminiClient, cfg.AI.Model, departmentRepo, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Departments:    handlers.NewDepartmentsHandler(departmentRepo),
		Users:          handlers.NewUsersHandler(userService),
		AI:             handlers.NewAIHandler(aiService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
