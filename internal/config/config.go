package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Pass    PassConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig points this service at the REST API that owns all business
// logic. Everything this service shows is fetched from BaseURL.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	// JWTSecret enables signature verification of the session token.
	// When empty the token is decoded without verification, matching the
	// behavior the site shipped with. Set it in production.
	JWTSecret    string
	CookieMaxAge time.Duration
}

type RedisConfig struct {
	// Addr is optional. When empty, public pages fetch from the backend on
	// every load instead of going through the cache.
	Addr string
	TTL  time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	Enabled  bool
	MockMode bool
}

type PassConfig struct {
	SecretKey string
	FontPath  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":3000"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getEnv("API_URL", "http://localhost:5001"), "/"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Session: SessionConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			CookieMaxAge: time.Duration(getEnvInt("SESSION_MAX_AGE_HOURS", 24)) * time.Hour,
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
			TTL:  time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:    getEnv("KAFKA_TOPIC_ACTIVITY", "museum.site.activity"),
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
		},
		Pass: PassConfig{
			SecretKey: getEnv("QR_SECRET_KEY", "museum-pass-secret"),
			FontPath:  getEnv("PASS_FONT_PATH", "./fonts/DejaVuSans.ttf"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
