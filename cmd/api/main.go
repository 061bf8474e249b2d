package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"caktus/internal/auth"
	"caktus/internal/db"
	"caktus/internal/llm"
	"caktus/internal/plant"
	"caktus/internal/report"
	"caktus/internal/router"
	"caktus/internal/sensor"
	"caktus/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

type config struct {
	Port          string
	DatabaseURL   string
	MQTTBroker    string
	MQTTTopic     string
	PollInterval  time.Duration
	CORSOrigins   []string
	LLMRatePerMin int
	DemoEmail     string
	DemoPassword  string
}

// loadConfig reads and validates the environment before anything is opened.
func loadConfig() (config, error) {
	for _, k := range []string{"JWT_SECRET", "GROQ_API_KEY"} {
		if os.Getenv(k) == "" {
			return config{}, fmt.Errorf("missing env var: %s", k)
		}
	}

	pollInterval, err := envDuration("SENSOR_POLL_INTERVAL", sensor.DefaultOptions().PollInterval)
	if err != nil {
		return config{}, err
	}
	ratePerMin, err := envInt("LLM_RATE_PER_MIN", 20)
	if err != nil {
		return config{}, err
	}

	return config{
		Port:          envOr("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MQTTBroker:    os.Getenv("MQTT_BROKER_URL"),
		MQTTTopic:     envOr("MQTT_TOPIC", "caktus/readings"),
		PollInterval:  pollInterval,
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
		LLMRatePerMin: ratePerMin,
		DemoEmail:     os.Getenv("DEMO_EMAIL"),
		DemoPassword:  os.Getenv("DEMO_PASSWORD"),
	}, nil
}

func run(cfg config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── REPOS ─────────────────────────
	var (
		userRepo    auth.UserRepository = auth.NewInMemoryUserRepository()
		plantRepo   plant.Repository    = plant.NewInMemoryRepository()
		readingRepo sensor.Repository   = sensor.NewInMemoryRepository()
	)

	if cfg.DatabaseURL != "" {
		pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres init failed: %w", err)
		}
		defer pgDB.Close()

		userRepo = auth.NewPostgresUserRepository(pgDB)
		plantRepo = plant.NewPostgresRepository(pgDB)
		readingRepo = sensor.NewPostgresRepository(pgDB)
	} else {
		log.Println("⚠️  DATABASE_URL not set, using in-memory storage")
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var photos plant.PhotoStore
	r2Client, err := storage.NewR2Client(ctx)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Println("⚠️  R2 not configured, photo upload disabled")
	case err != nil:
		return fmt.Errorf("R2 init failed: %w", err)
	default:
		photos = r2Client
	}

	// ───────────────────────── LLM ─────────────────────────
	groq := llm.NewGroqClient()
	llmClient := llm.NewBreakerClient(groq, groq.Name(), 3, 30*time.Second)

	// ───────────────────────── SENSOR ─────────────────────────
	var source sensor.Source = sensor.NewSimulator(nil)
	if cfg.MQTTBroker != "" {
		mqttSource, err := sensor.NewMQTTSource(cfg.MQTTBroker, cfg.MQTTTopic, time.Minute)
		if err != nil {
			return fmt.Errorf("MQTT init failed: %w", err)
		}
		defer mqttSource.Close()
		source = mqttSource
	}

	opts := sensor.DefaultOptions()
	opts.PollInterval = cfg.PollInterval

	manager := sensor.NewManager(
		sensor.NewSimulatedScanner(sensor.DefaultDiscoveries()...),
		source,
		readingRepo,
		opts,
	)
	defer manager.Close()

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(userRepo)
	plantService := plant.NewService(plantRepo, llmClient, photos)
	reportService := report.NewService(plantService, manager, llmClient)

	if cfg.DemoEmail != "" {
		if err := authService.EnsureUser(ctx, "Demo", cfg.DemoEmail, cfg.DemoPassword); err != nil {
			return fmt.Errorf("demo user seed failed: %w", err)
		}
	}

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		Auth:          auth.NewHandler(authService),
		Plants:        plant.NewHandler(plantService),
		Reports:       report.NewHandler(reportService),
		Sensors:       sensor.NewHandler(manager, readingRepo),
		CORSOrigins:   cfg.CORSOrigins,
		LLMRatePerMin: cfg.LLMRatePerMin,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API running at http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  shutdown: %v", err)
	}
	return nil
}

// --------------------------------------------------
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 5s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
