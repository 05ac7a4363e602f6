package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/mkoren/storage-labels/internal/config"
	"github.com/mkoren/storage-labels/internal/database"
	"github.com/mkoren/storage-labels/internal/handler"
	"github.com/mkoren/storage-labels/internal/middleware"
	"github.com/mkoren/storage-labels/internal/queue"
	"github.com/mkoren/storage-labels/internal/repository"
	"github.com/mkoren/storage-labels/internal/router"
	queue_publisher "github.com/mkoren/storage-labels/internal/service"
	"github.com/mkoren/storage-labels/internal/upload"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("ensuring schema: %v", err)
	}

	photos, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("preparing upload directory: %v", err)
	}

	containers := repository.NewContainerRepo(db)
	items := repository.NewItemRepo(db)
	locations := repository.NewLocationRepo(db)
	search := repository.NewSearchRepo(db)
	events := queue_publisher.Publisher{}

	handlers := router.Handlers{
		Containers: &handler.ContainerHandler{Containers: containers, Items: items, Photos: photos, Events: events},
		Items:      &handler.ItemHandler{Containers: containers, Items: items, Photos: photos, Events: events},
		Locations:  &handler.LocationHandler{Locations: locations},
		Search:     &handler.SearchHandler{Store: search},
		Export:     &handler.ExportHandler{Containers: containers, Items: items},
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, handlers, cfg.UploadDir,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	// Append inventory events to the audit log in the background.
	go queue.StartInventoryConsumer()

	addr := ":" + cfg.Port
	log.Printf("storage-labels API listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
