package config

import (
	"os"
	"strconv"

	"taskmanager/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Dropping and recreating the schema loses all data; off unless
	// DB_RESET=true is set explicitly.
	ResetSchema bool

	// Redis is optional; without it the login rate limiter is a no-op.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginRateLimit  int
	LoginRateWindow int // seconds

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "task-manager"
	}

	audience := os.Getenv("JWT_AUDIENCE")
	if audience == "" {
		audience = "task-manager-clients"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	loginRateLimit := 5
	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			loginRateLimit = n
		}
	}

	loginRateWindow := 60
	if v := os.Getenv("LOGIN_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			loginRateWindow = n
		}
	}

	return &Config{
		AppPort:         port,
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		JWTIssuer:       issuer,
		JWTAudience:     audience,
		ResetSchema:     os.Getenv("DB_RESET") == "true",
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		LoginRateLimit:  loginRateLimit,
		LoginRateWindow: loginRateWindow,
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
	}
}
