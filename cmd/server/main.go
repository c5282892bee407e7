// Package main is the entry point for the Park Explorer server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/api"
	"github.com/dshapiro789/NationalParkExplorer/internal/catalog"
	"github.com/dshapiro789/NationalParkExplorer/internal/config"
	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/favorites"
	"github.com/dshapiro789/NationalParkExplorer/internal/maps"
	"github.com/dshapiro789/NationalParkExplorer/internal/nps"
	"github.com/dshapiro789/NationalParkExplorer/internal/observability"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/remote"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage"
	"github.com/dshapiro789/NationalParkExplorer/internal/tiles"
	"github.com/dshapiro789/NationalParkExplorer/internal/trips"
	"github.com/dshapiro789/NationalParkExplorer/internal/weather"
	"github.com/dshapiro789/NationalParkExplorer/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	configPath := flag.String("config", "./config.toml", "Path to TOML config file")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Addr); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	log.Printf("Starting Park Explorer server (version: %s)...", version)

	// Initialize database
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %q: %v", cfg.DataDir, err)
	}
	db, err := storage.NewDB(cfg.DatabasePath())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewEventBroadcaster(hub)

	// Initialize repositories
	parkRepo := storage.NewParkRepository(db)
	tileRepo := storage.NewTileRepository(db)
	mapRepo := storage.NewMapRepository(db)

	// Initialize connectivity monitor; status changes fan out to clients
	// and the gauge.
	monitor := connectivity.NewMonitor()
	monitor.Subscribe(func(online bool) {
		broadcaster.BroadcastConnectivityChanged(online)
		if online {
			observability.ConnectivityOnline.Set(1)
		} else {
			observability.ConnectivityOnline.Set(0)
		}
	})
	observability.ConnectivityOnline.Set(1)

	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
	monitor.Probe(probeCtx, &http.Client{Timeout: 5 * time.Second}, cfg.BackendURL)
	cancelProbe()

	// Initialize remote clients
	backend := remote.NewClient(cfg.BackendURL, cfg.BackendKey)
	authClient := remote.NewAuthClient(backend)
	profileStore := remote.NewProfileStore(backend)
	tripStore := remote.NewTripStore(backend)

	npsClient := nps.NewClient(cfg.NPSBaseURL, cfg.NPSAPIKey)
	weatherClient := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey)

	// Initialize services
	cache := querycache.NewCache()
	catalogService := catalog.NewService(npsClient, parkRepo, monitor, cache)
	favoritesService := favorites.NewService(profileStore, cache)
	tripsService := trips.NewService(tripStore, cache)
	tileLoader := tiles.NewLoader(tileRepo, monitor)
	mapsService := maps.NewService(mapRepo, monitor)

	// Start the background sync scheduler
	scheduler := catalog.NewScheduler(catalogService, monitor, tileRepo, broadcaster)
	if err := scheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start sync scheduler: %v", err)
	}

	// Initialize HTTP router
	router := api.NewRouter(api.Services{
		DB:        db,
		Parks:     parkRepo,
		Hub:       hub,
		Monitor:   monitor,
		Cache:     cache,
		Catalog:   catalogService,
		Favorites: favoritesService,
		Trips:     tripsService,
		Tiles:     tileLoader,
		Maps:      mapsService,
		NPS:       npsClient,
		Weather:   weatherClient,
		Auth:      authClient,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
