package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/config"
	"github.com/andesviajes/storefront/internal/events"
	"github.com/andesviajes/storefront/internal/httpapi"
	"github.com/andesviajes/storefront/internal/rates"
	"github.com/andesviajes/storefront/internal/trips"
	"github.com/andesviajes/storefront/internal/weather"
	"github.com/andesviajes/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.New("storefront", cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Connected to Redis at %s", cfg.RedisAddr)

	backendClient := backend.NewClient(cfg.BackendBaseURL, cfg.RequestTimeout)
	log.Printf("Using store backend at %s", cfg.BackendBaseURL)

	tripStore := trips.NewRedisStore(redisClient)
	tripValidator := trips.NewTripValidator()

	rateCache := rates.NewCache(backendClient, cfg.RatesRefreshEvery)
	go rateCache.Run(ctx)

	weatherClient := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherCity, cfg.RequestTimeout)

	if len(cfg.KafkaBrokers) > 0 {
		consumer := events.NewConsumer(tripStore, cfg.KafkaBrokers...)
		defer consumer.Close()
		go consumer.Run(ctx)
		log.Printf("Order-events consumer running against %v", cfg.KafkaBrokers)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Sessions:       httpapi.NewSessions(backendClient, tripStore),
		Backend:        backendClient,
		TripStore:      tripStore,
		TripValidator:  tripValidator,
		Rates:          rateCache,
		Weather:        weatherClient,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Storefront listening on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down storefront...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	log.Println("Storefront stopped")
}
