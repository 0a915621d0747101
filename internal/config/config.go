package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup. It is
// loaded once in main and passed down; there are no package globals.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	RedisURL string

	JWTSecret string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	AllowedEmailDomain string
}

// Load reads .env (if present) and the environment, applying defaults.
// It fails when the token signing secret is missing or too short.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "4000"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "eballot"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		DBTimezone:         getEnv("DB_TIMEZONE", "UTC"),
		RedisURL:           getEnv("REDIS_URL", ""),
		JWTSecret:          getEnv("APP_JWT_SECRET", ""),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPass:           getEnv("SMTP_PASS", ""),
		EmailFrom:          getEnv("EMAIL_FROM", `"UMak eBallot" <noreply@umak.edu.ph>`),
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "umak.edu.ph"),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port

	if len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("APP_JWT_SECRET must be at least 16 characters")
	}

	return cfg, nil
}

// DSN builds the Postgres data source name.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
