package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"etiket-museum/internal/backend"
	"etiket-museum/internal/booking"
	"etiket-museum/internal/cache"
	"etiket-museum/internal/config"
	"etiket-museum/internal/events"
	"etiket-museum/internal/logger"
	"etiket-museum/internal/pass"
	"etiket-museum/internal/reviews"
	"etiket-museum/internal/session"
	"etiket-museum/internal/web"
)

// connectRedis is best-effort: the cache is an optimization, so a missing
// or unreachable redis degrades to direct backend fetches instead of
// refusing to start.
func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info("REDIS", "REDIS_ADDR not set, page cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unreachable at %s, page cache disabled: %v", cfg.Addr, err))
		client.Close()
		return nil
	}

	log.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting museum web service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	producer := events.NewProducer(cfg.Kafka, log)
	defer producer.Close()

	client := backend.New(cfg.Backend, log)
	log.Info("BACKEND", fmt.Sprintf("Using backend API at %s", cfg.Backend.BaseURL))

	store := session.NewStore(cfg.Session.JWTSecret, cfg.Session.CookieMaxAge)
	if cfg.Session.JWTSecret == "" {
		log.Warn("AUTH", "JWT_SECRET not set, session tokens are decoded without signature verification")
	}

	renderer, err := web.NewRenderer(log)
	if err != nil {
		log.Fatal("RENDER", fmt.Sprintf("Failed to load templates: %v", err))
	}

	pageCache := cache.New(redisClient, cfg.Redis.TTL, log)
	bookingSvc := booking.NewService(client, producer, log)
	reviewSvc := reviews.NewService(client, log)
	passGen := pass.NewGenerator(cfg.Pass.SecretKey, cfg.Pass.FontPath)

	handlers := web.NewHandlers(cfg, log, renderer, client, pageCache, bookingSvc, reviewSvc, passGen, producer, store)

	log.Info("HTTP", "Setting up router and middleware")
	router := web.NewRouter(handlers, store, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Museum web service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Museum web service shutdown complete")
	}
}
