package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"bompick/api"
	"bompick/config"
	"bompick/handlers"
	"bompick/services/browse"
	"bompick/services/catalog"
	"bompick/utils"
)

func main() {
	configPath := flag.String("config", "bompick.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "bompick.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}))

	if cfg.TMDB.APIKey == "" {
		log.Printf("[main] warning: no TMDB API key configured; upstream requests will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogService := catalog.NewService(cfg.TMDB, cfg.Catalog, nil)
	catalogHandler := handlers.NewCatalogHandler(ctx, catalogService)
	browseHandler := handlers.NewBrowseHandler(browse.NewRegistry(cfg.Browse.PageSize), catalogHandler)

	router := utils.NewRouter()
	router.Use(api.NewRateLimiter(rate.Limit(25), 50).Middleware())
	catalogHandler.RegisterRoutes(router)
	browseHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[main] shutdown: %v", err)
		}
	}()

	log.Printf("[main] listening on %s", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[main] server: %v", err)
	}
	log.Printf("[main] stopped")
}
