package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-scoring-system/cache"
	"gym-scoring-system/config"
	"gym-scoring-system/handlers"
	"gym-scoring-system/middleware"
	"gym-scoring-system/repository"
	"gym-scoring-system/services"
	"gym-scoring-system/utils"
	"gym-scoring-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("failed to migrate database:", err)
	}
	store := repository.NewStore(db)

	// --- Ranking cache (optional) ---
	var rankingCache services.RankingCache = cache.Noop{}
	if cfg.CacheEnabled() {
		redisCache, err := cache.NewRedisRankingCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RankingCacheTTL)
		if err != nil {
			log.Fatal("failed to connect to redis:", err)
		}
		defer redisCache.Close()
		rankingCache = redisCache
	} else {
		log.Println("⚠️  REDIS_ADDR not set, rankings are computed on every request")
	}

	// --- Results publishing (optional) ---
	var uploader services.ObjectUploader
	if cfg.R2Enabled() {
		r2, err := utils.NewR2Uploader(ctx, utils.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2BucketName,
			CDNBaseURL:      cfg.CDNBaseURL,
		})
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		uploader = r2
	} else {
		log.Println("⚠️  R2 settings incomplete, results publishing disabled")
	}

	registrationService := services.NewRegistrationService(store)
	approvalService := services.NewApprovalService(store)
	competitionService := services.NewCompetitionService(store)
	rosterService := services.NewRosterService(store, rankingCache)
	scoreService := services.NewScoreService(store, rankingCache)
	rankingService := services.NewRankingService(store, rankingCache)
	statsService := services.NewStatsService(store)
	resultsService := services.NewResultsService(store, rankingService, uploader)

	if cfg.BootstrapAdminEmail != "" {
		if _, err := registrationService.EnsureBootstrapAdmin(ctx, cfg.BootstrapAdminEmail); err != nil {
			log.Fatal("failed to bootstrap admin account:", err)
		}
	}

	retentionWorker := workers.NewRejectionRetentionWorker(store, cfg.RejectionRetention, cfg.RetentionSweepInterval)
	if err := retentionWorker.Start(ctx); err != nil {
		log.Fatal("failed to start retention worker:", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(cfg.GatewayToken))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	app.Use(middleware.AccountContextMiddleware(store))

	handlers.SetupAccountRoutes(app, registrationService, approvalService)
	handlers.SetupCompetitionRoutes(app, competitionService, rosterService)
	handlers.SetupScoringRoutes(app, scoreService, rankingService, statsService, resultsService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Println("✅ GatewayAuthMiddleware enforced globally, all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", cfg.Origins())

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
