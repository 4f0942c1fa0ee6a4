package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"audition_backend/internals/configs"
	database "audition_backend/internals/databases"
	scheduler "audition_backend/internals/features/users/auth/scheduler"
	helper "audition_backend/internals/helpers"
	middlewares "audition_backend/internals/middlewares"
	routes "audition_backend/internals/route"
	"audition_backend/internals/seeds"
)

func main() {
	seedOnly := flag.Bool("seed", false, "jalankan seeder lalu keluar")
	flag.Parse()

	configs.LoadEnv()

	// 🌱 mode seeder
	if *seedOnly {
		db := configs.InitSeederDB()
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("❌ %v", err)
		}
		seeds.RunAllSeeds(db)
		log.Println("✅ Seeding selesai")
		return
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Println("✅ Auto migrate selesai")
	}
	if configs.GetEnvBool("SEED_ON_BOOT", false) {
		seeds.RunAllSeeds(database.DB)
	}
	database.WarmUpQueries()

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(database.DB)
	if err != nil {
		log.Fatalf("❌ cleanup scheduler: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + stop cron + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-cleanup.Stop().Done()

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
