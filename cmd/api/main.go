package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/config"
	"github.com/primestaffing/recruiter-tracker/internal/database"
	"github.com/primestaffing/recruiter-tracker/internal/handler"
	"github.com/primestaffing/recruiter-tracker/internal/mail"
	"github.com/primestaffing/recruiter-tracker/internal/middleware"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
	"github.com/primestaffing/recruiter-tracker/internal/router"
	"github.com/primestaffing/recruiter-tracker/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis not configured; password reset cooldown disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to nats")
		}
		defer natsConn.Drain()
	}

	var transport mail.Transport
	if cfg.MailAPIKey != "" {
		resendTransport, err := mail.NewResendTransport(cfg.MailEndpoint, cfg.MailAPIKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure mail transport")
		}
		transport = resendTransport
	} else {
		logger.Warn().Msg("mail api key not configured; emails will be logged instead of sent")
		transport = mail.NewLogTransport(logger)
	}
	mailer := mail.NewMailer(transport, cfg.MailFrom, cfg.AppName)

	validate := service.NewValidator()

	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	auditService := service.NewAuditService(auditRepo, service.NewNATSAuditPublisher(natsConn, cfg.NATSSubject), logger)
	authService := service.NewAuthService(userRepo, validate, logger, cfg.JWTSecret, cfg.JWTTTL)
	passwordService := service.NewPasswordService(userRepo, redisClient, mailer, validate, logger, service.PasswordResetOptions{
		TokenTTL: cfg.ResetTokenTTL,
		Cooldown: cfg.ResetCooldown,
		Link:     cfg.ResetLink,
	})
	goalService := service.NewGoalService(goalRepo, auditService, validate, logger)
	commissionService := service.NewCommissionService(commissionRepo, userRepo, auditService, validate, logger)
	dashboardService := service.NewDashboardService(userRepo, goalRepo, commissionRepo, validate, logger)
	userService := service.NewUserService(userRepo, auditService, mailer, validate, logger, cfg.LoginLink())

	healthChecks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:        &logger,
		AllowOrigins:  cfg.CORSOrigins,
		SessionSecret: cfg.JWTSecret,
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, passwordService, logger),
		GoalHandler:       handler.NewGoalHandler(goalService, logger),
		CommissionHandler: handler.NewCommissionHandler(commissionService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		AuditHandler:      handler.NewAuditHandler(auditService, logger),
		SettingsHandler:   handler.NewSettingsHandler(passwordService, logger),
		HealthChecks:      healthChecks,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
