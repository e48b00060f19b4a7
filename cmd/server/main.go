package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kerala-gov/migrant-health/internal/auth"
	"github.com/kerala-gov/migrant-health/internal/dashboard"
	"github.com/kerala-gov/migrant-health/internal/indicator"
	"github.com/kerala-gov/migrant-health/internal/migrant"
	sharedauth "github.com/kerala-gov/migrant-health/internal/shared/auth"
	"github.com/kerala-gov/migrant-health/internal/shared/cache"
	"github.com/kerala-gov/migrant-health/internal/shared/config"
	"github.com/kerala-gov/migrant-health/internal/shared/database"
	"github.com/kerala-gov/migrant-health/internal/shared/events"
	"github.com/kerala-gov/migrant-health/internal/shared/metrics"
	secmiddleware "github.com/kerala-gov/migrant-health/internal/shared/middleware"
	"github.com/kerala-gov/migrant-health/internal/visit"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *database.DB
	Bus    *events.Bus
	Cache  *cache.Client
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := &App{Config: cfg}

	// Initialize database; fall back to in-memory stores if unavailable
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		fmt.Printf("Warning: Database not available: %v\n", err)
		fmt.Println("Running with in-memory stores; data will not survive a restart...")
	} else {
		app.DB = db
		defer db.Close()

		if err := database.Migrate(ctx, db.Pool); err != nil {
			fmt.Printf("Warning: Migration failed: %v\n", err)
		}
	}

	// Initialize event bus (optional - skip if not available)
	bus, err := events.NewBus(ctx, cfg.EventStore)
	if err != nil {
		fmt.Printf("Warning: EventStoreDB not available: %v\n", err)
		fmt.Println("Running without event streaming...")
	} else {
		app.Bus = bus
		defer bus.Close()
		fmt.Println("Event bus initialized")
	}

	// Initialize redis cache (optional - empty REDIS_URL disables it)
	redisClient, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		fmt.Printf("Warning: Redis not available: %v\n", err)
		fmt.Println("Dashboard summaries will be recomputed on every request...")
	} else if redisClient != nil {
		app.Cache = redisClient
		defer redisClient.Close()
		fmt.Println("Dashboard cache initialized")
	}

	// Stores: postgres-backed when the database is up, in-memory otherwise
	var (
		userStore      auth.Store
		migrantStore   migrant.Store
		recordStore    visit.Store
		indicatorStore indicator.Store
	)
	if app.DB != nil {
		userStore = auth.NewRepository(app.DB.Pool)
		migrantStore = migrant.NewRepository(app.DB.Pool)
		recordStore = visit.NewRepository(app.DB.Pool)
		indicatorStore = indicator.NewRepository(app.DB.Pool)
	} else {
		userStore = auth.NewMemoryStore()
		migrantStore = migrant.NewMemoryStore()
		recordStore = visit.NewMemoryStore()
		indicatorStore = indicator.NewMemoryStore()
	}

	// Seed the demo operator account
	if err := userStore.EnsureDefaultAdmin(ctx); err != nil {
		fmt.Printf("Warning: Failed to seed default user: %v\n", err)
	}

	loginService := auth.NewService(userStore, cfg.Auth)
	loginLimiter := secmiddleware.NewIPRateLimiter(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst)
	authHandler := auth.NewHandler(loginService, loginLimiter)

	migrantHandler := migrant.NewHandler(migrantStore, recordStore, app.Bus)
	visitHandler := visit.NewHandler(recordStore, app.Bus)
	indicatorHandler := indicator.NewHandler(indicatorStore, app.Bus)

	dashboardCache := dashboard.NewCache(app.Cache, time.Duration(cfg.Dashboard.CacheTTLSeconds)*time.Second)
	dashboardService := dashboard.NewService(migrantStore, recordStore, indicatorStore, dashboardCache)
	dashboardHandler := dashboard.NewHandler(dashboardService, app.Bus)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware)

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler(app))
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Login stays public
		r.Mount("/auth", authHandler.Routes())

		r.Group(func(r chi.Router) {
			// Dev mode leaves the API open, like the rest of the demo auth
			if cfg.Server.Env == "production" {
				r.Use(sharedauth.Middleware(cfg.Auth))
			}

			r.Mount("/migrants", migrantHandler.Routes())
			r.Mount("/records", visitHandler.Routes())
			r.Mount("/indicators", indicatorHandler.Routes())
			r.Mount("/dashboard", dashboardHandler.Routes())
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		fmt.Println("\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
		close(done)
	}()

	fmt.Println("============================================")
	fmt.Println("Migrant Health Record Management System")
	fmt.Println("============================================")
	fmt.Printf("Environment:  %s\n", cfg.Server.Env)
	fmt.Printf("Server:       http://localhost:%d\n", cfg.Server.Port)
	fmt.Printf("API:          http://localhost:%d/api/v1\n", cfg.Server.Port)
	fmt.Printf("Health:       http://localhost:%d/health\n", cfg.Server.Port)
	fmt.Printf("Database:     %v\n", app.DB != nil)
	fmt.Printf("Event bus:    %v\n", app.Bus != nil)
	fmt.Printf("Cache:        %v\n", app.Cache != nil)
	fmt.Println("============================================")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	<-done
	fmt.Println("Server stopped")
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    "Migrant Health Record Management System",
		"version": "0.1.0",
		"docs":    "/api/v1",
	})
}

func healthHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server": "ready",
		}

		// Check database
		if app.DB != nil {
			if err := app.DB.Health(r.Context()); err != nil {
				checks["database"] = "not ready: " + err.Error()
			} else {
				checks["database"] = "ready"
			}
		} else {
			checks["database"] = "not configured"
		}

		// Check event bus
		if app.Bus != nil {
			if err := app.Bus.Health(); err != nil {
				checks["eventstore"] = "not ready: " + err.Error()
			} else {
				checks["eventstore"] = "ready"
			}
		} else {
			checks["eventstore"] = "not configured"
		}

		// Check cache
		if app.Cache != nil {
			if err := app.Cache.Health(r.Context()); err != nil {
				checks["redis"] = "not ready: " + err.Error()
			} else {
				checks["redis"] = "ready"
			}
		} else {
			checks["redis"] = "not configured"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
