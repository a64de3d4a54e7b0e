package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSSLMode            string
	RedisHost            string
	RedisPort            string
	JWTSecret            string
	RefreshTokenSecret   string
	ResendAPIKey         string
	EmailVerificationURL string
	GinMode              string
}

func Load() *Config {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "habituser"),
		DBPassword:           getEnv("DB_PASSWORD", "habitpassword"),
		DBName:               getEnv("DB_NAME", "habit_tracker"),
		DBSSLMode:            getEnv("DB_SSLMODE", "disable"),
		RedisHost:            getEnv("REDIS_HOST", ""),
		RedisPort:            getEnv("REDIS_PORT", "6379"),
		JWTSecret:            getEnv("JWT_SECRET", "default-secret-key-change-me"),
		RefreshTokenSecret:   getEnv("REFRESH_TOKEN_SECRET", "default-refresh-secret-change-me"),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		EmailVerificationURL: getEnv("EMAIL_VERIFICATION_URL", "http://localhost:8080/auth/verify-email"),
		GinMode:              getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
