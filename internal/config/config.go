package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string
	LogLevel string

	// Base URL of the store backend (auth, cart, products, orders, rates).
	BackendBaseURL string

	RedisAddr     string
	RedisPassword string

	// Kafka brokers for the order-events consumer. Empty disables it.
	KafkaBrokers []string

	WeatherBaseURL string
	WeatherAPIKey  string
	WeatherCity    string

	RatesRefreshEvery time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		BackendBaseURL:    getEnv("BACKEND_URL", "http://localhost:3000"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "")),
		WeatherBaseURL:    getEnv("WEATHER_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherAPIKey:     getEnv("OPENWEATHER_API_KEY", ""),
		WeatherCity:       getEnv("WEATHER_DEFAULT_CITY", "Buenos Aires"),
		RatesRefreshEvery: time.Hour,
		RequestTimeout:    30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
