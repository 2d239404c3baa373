package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/configs"
	database "basamu_backend/internals/databases"
	eventModel "basamu_backend/internals/features/content/events/model"
	executiveModel "basamu_backend/internals/features/content/executives/model"
	galleryModel "basamu_backend/internals/features/content/gallery/model"
	homeModel "basamu_backend/internals/features/content/home/model"
	authModel "basamu_backend/internals/features/users/auth/model"
	authRepo "basamu_backend/internals/features/users/auth/repository"
	scheduler "basamu_backend/internals/features/users/auth/scheduler"
	authService "basamu_backend/internals/features/users/auth/service"
	profileModel "basamu_backend/internals/features/users/profiles/model"
	roleModel "basamu_backend/internals/features/users/roles/model"
	roleRepo "basamu_backend/internals/features/users/roles/repository"
	roleService "basamu_backend/internals/features/users/roles/service"
	userModel "basamu_backend/internals/features/users/user/model"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
	"basamu_backend/internals/helpers/storage"
	"basamu_backend/internals/helpers/upload"
	middlewares "basamu_backend/internals/middlewares"
	"basamu_backend/internals/middlewares/logger"
	routes "basamu_backend/internals/route"
	routeDetails "basamu_backend/internals/route/details"
)

const uploadBodyLimit = 55 * 1024 * 1024 // largest upload (50 MB video) plus multipart overhead

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	configs.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	// 🔌 DB connect + pool
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := database.TunePool(db); err != nil {
		log.Warn().Err(err).Msg("tune pool")
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db,
			&userModel.UserModel{},
			&authModel.RefreshTokenModel{},
			&authModel.TokenBlacklist{},
			&roleModel.UserRole{},
			&profileModel.ProfileModel{},
			&executiveModel.ExecutiveModel{},
			&eventModel.EventModel{},
			&galleryModel.CulturalImageModel{},
			&homeModel.HomeContentModel{},
		); err != nil {
			log.Fatal().Err(err).Msg("auto migrate")
		}
		log.Info().Msg("schema migrated")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	metrics := middlewares.NewMetrics()

	// 🗄️ blob store + upload pipeline
	store, err := storage.FromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage")
	}
	workflow := upload.New(store,
		upload.WithOptimizer(upload.NewImageOptimizer(cfg.ImageMaxDimension, cfg.ImageWebPQuality)),
		upload.WithObserver(metrics.ObserveUpload),
	)

	// 🔐 sessions + roles
	accounts := authRepo.New(db)
	hub := authService.NewHub()
	hub.Subscribe(authService.AuditSubscriber)
	hub.Subscribe(func(e authService.Event) { metrics.ObserveSessionEvent(string(e.Type)) })

	var providerOpts []authService.ProviderOption
	if cfg.GoogleClientID != "" {
		providerOpts = append(providerOpts, authService.WithGoogle(authService.NewGoogleVerifier(cfg.GoogleClientID)))
	}
	provider := authService.NewProvider(accounts,
		authService.NewTokens(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		hub, providerOpts...)

	roles := roleRepo.New(db)
	gate := roleService.NewGate(roles, metrics.ObserveAdminCheck)
	roleService.SeedAdmins(ctx, accounts, roles, cfg.AdminEmails)

	// ⏱ scheduler once the DB is ready
	scheduler.StartBlacklistCleanupScheduler(ctx, accounts, cfg.BlacklistTTLDays, 24*time.Hour)

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             uploadBodyLimit,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          logger.UploadTimeout,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(logger.DefaultTimeout))
	app.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(metrics.Middleware())
	app.Use(middlewares.GlobalRateLimiter())

	routes.SetupRoutes(app, routeDetails.Deps{
		DB:       db,
		Config:   cfg,
		Provider: provider,
		Accounts: accounts,
		Gate:     gate,
		Workflow: workflow,
		Metrics:  metrics,
		Guard:    inflight.New(),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("listening")
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}
