package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	APIBaseURL    string
	SessionSecret string
	RateLimit     float64
	RateBurst     int
}

func LoadConfig() Config {
	// .env is optional; deployed environments set real env vars
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("Failed to load .env file:", err)
		}
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		APIBaseURL:    getEnv("API_BASE_URL", "https://api.example.com/api"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		RateLimit:     getEnvFloat("RATE_LIMIT", 10),
		RateBurst:     getEnvInt("RATE_BURST", 20),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
