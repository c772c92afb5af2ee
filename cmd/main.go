package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/joho/godotenv"

	"github.com/saddexed/clips/internal/config"
	"github.com/saddexed/clips/internal/gallery"
	"github.com/saddexed/clips/internal/handlers"
	service "github.com/saddexed/clips/internal/services"
	"github.com/saddexed/clips/internal/storage"
	utils "github.com/saddexed/clips/internal/utis"
	"github.com/saddexed/clips/web"
)

func main() {
	// .env first, then config file + env overrides
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	for _, dir := range []string{cfg.Upload.Dir, cfg.Upload.ProcessedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatalf("create dir %q: %v", dir, err)
		}
	}

	// remote store
	var remote storage.RemoteStore
	switch cfg.Storage.Backend {
	case "s3":
		remote, err = storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint)
		if err != nil {
			logger.Fatalf("s3 init: %v", err)
		}
	default:
		remote = storage.NewDiscordStore(cfg.Discord.APIURL, cfg.Discord.ChannelID, cfg.Discord.Token)
	}

	store := gallery.NewStore(cfg.Gallery.DataPath)
	msvc := service.NewMediaService(remote, store, cfg.Upload.ProcessedDir, logger)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		// headroom above the per-file limit for multipart framing
		BodyLimit:    int(cfg.MaxFileSize) + 10*1024*1024,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	})
	app.Use(cors.New())

	h := handlers.NewHandler(msvc, cfg.Upload.Dir, cfg.MaxFileSize, logger)
	h.Register(app)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		logger.Fatalf("static assets: %v", err)
	}
	app.Get("/control-panel", func(c *fiber.Ctx) error {
		page, err := fs.ReadFile(static, "control-panel.html")
		if err != nil {
			return err
		}
		c.Type("html")
		return c.Send(page)
	})
	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(static),
		Index: "index.html",
	}))

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("gallery server running on %s (backend: %s)", addr, cfg.Storage.Backend)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")
	_ = app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	logger.Info("shutdown completed")
}
