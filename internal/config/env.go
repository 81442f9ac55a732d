package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultKeywords is the planning-review keyword set the scanner ships
// with; callers override it per request.
const defaultKeywords = "construction, height, traffic, parking, heritage, green belt, biodiversity, affordable housing"

type Config struct {
	Port            string
	SpoolDir        string
	MaxUploadMB     int
	DefaultKeywords string
	DefaultWindow   int
	MinWindow       int
	MaxWindow       int
	AllowedOrigins  []string
}

// LoadConfig loads the environment variables and returns config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		SpoolDir:        getEnv("SPOOL_DIR", os.TempDir()),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 64),
		DefaultKeywords: getEnv("DEFAULT_KEYWORDS", defaultKeywords),
		DefaultWindow:   getEnvInt("DEFAULT_WINDOW", 60),
		MinWindow:       getEnvInt("MIN_WINDOW", 20),
		MaxWindow:       getEnvInt("MAX_WINDOW", 400),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
	}

	if cfg.MinWindow > cfg.MaxWindow {
		log.Printf("WARN: MIN_WINDOW %d > MAX_WINDOW %d, swapping", cfg.MinWindow, cfg.MaxWindow)
		cfg.MinWindow, cfg.MaxWindow = cfg.MaxWindow, cfg.MinWindow
	}

	return cfg
}

// MaxUploadBytes converts the configured upload cap to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
