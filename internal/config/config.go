package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultTreesPerCredit is the impact conversion factor: how many
// trees-planted-equivalents one purchased credit counts for. The number is a
// policy placeholder, which is why it is an explicit named constant rather
// than buried in the trade path.
const DefaultTreesPerCredit = 1.0

type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	TreesPerCredit float64
	Env            string
	Debug          bool
}

// Load reads configuration from a .env file when present, falling back to
// process environment variables and defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "carbonx.db"),
		JWTSecret:      getEnv("JWT_SECRET", "carbonx-secret-key"),
		TreesPerCredit: getEnvFloat("TREES_PER_CREDIT", DefaultTreesPerCredit),
		Env:            getEnv("ENV", "development"),
		Debug:          getEnv("DEBUG", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid float in environment, using default")
		return defaultValue
	}
	return f
}
