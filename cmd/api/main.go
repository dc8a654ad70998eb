package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/notify"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/upload"
	"github.com/spec-kit/helpdesk-service/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	timelineRepo := repository.NewTimelineRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	mailer := notify.NewMailer(cfg.SMTP, logger)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.SMTP, cfg.App.AdminPortalURL)
	worker.StartNotificationWorker(notificationService)

	storage, err := upload.NewStorage(cfg.Uploads)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	otpStore := auth.NewOTPStore(redis.Client, cfg.Auth.OTPTTLMinutes)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		TimelineRepo: timelineRepo,
		EmployeeRepo: employeeRepo,
		ProjectRepo:  projectRepo,
		AdminRepo:    adminRepo,
		Dispatcher:   dispatcher,
	})
	authService := service.NewAuthService(adminRepo, tokenManager, otpStore, notificationService, logger, cfg.Auth, cfg.SMTP)
	employeeService := service.NewEmployeeService(employeeRepo)
	projectService := service.NewProjectService(projectRepo)
	announcementService := service.NewAnnouncementService(announcementRepo)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, adminRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Uploads.MaxFileBytes) * (cfg.Uploads.MaxCreateFiles + 1),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsProduction())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService, storage, cfg.Uploads),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService, storage, cfg.Uploads),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService),
		AuthMiddleware: authMiddleware,
		UploadDir:      storage.Dir(),
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
