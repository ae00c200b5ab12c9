package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"progression-service/config"
	"progression-service/handlers"
	"progression-service/middleware"
	"progression-service/models"
	"progression-service/services"
	"progression-service/store"
	"progression-service/utils"
	"progression-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.ProgressionBlob{},
		&models.GemTransaction{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	blobStore := store.NewGormStore(db)
	txLog := store.NewGormTransactionLog(db)
	notifier := services.NewNotifier()
	facade := services.NewProgressionFacade(blobStore, txLog, notifier, &cfg.Economy)

	app := fiber.New(fiber.Config{
		AppName: "progression-service",
	})

	app.Use(middleware.GatewayAuthMiddleware(cfg.GatewayToken))

	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	handlers.SetupProgressionRoutes(app, facade)

	sched, err := facade.StartMaintenanceScheduler()
	if err != nil {
		log.Fatalf("failed to start maintenance scheduler: %v", err)
	}
	defer func() { _ = sched.Shutdown() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ArchiveEnabled {
		archive, err := utils.NewArchiveClient(cfg)
		if err != nil {
			log.Fatalf("failed to initialize archive client: %v", err)
		}
		archiver := workers.NewSnapshotArchiver(facade, archive)
		go archiver.Run(ctx, time.Duration(cfg.ArchiveIntervalMinutes)*time.Minute)
	}

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Errorf("server error: %v", err)
		}
	}()
	log.Infof("progression service running on :%d", cfg.Port)

	<-ctx.Done()
	log.Info("shutting down...")
	_ = app.Shutdown()
}
