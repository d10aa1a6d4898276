package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the application reads from the environment.
// It is built once at startup and injected into the components that need
// it, so nothing below main reaches for os.Getenv.
type Config struct {
	Port            string
	MongoURI        string
	DatabaseName    string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowedOrigins  []string
	GCSBucket       string
	CredentialsFile string
}

// Load reads .env (if present) and the process environment. The signing
// secret and the database URI have no fallback: starting without them is
// an operator error, not something to paper over with a default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:            envDefault("PORT", "8080"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		DatabaseName:    envDefault("DATABASE_NAME", "postsapp"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  envSeconds("JWT_EXPIRES_IN", 3600),
		RefreshTokenTTL: envSeconds("REFRESH_TOKEN_EXPIRES_IN", 604800),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		CredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is not set")
	}

	return cfg, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envSeconds(key string, def int) time.Duration {
	secs, _ := strconv.Atoi(os.Getenv(key))
	if secs <= 0 {
		secs = def
	}
	return time.Duration(secs) * time.Second
}
