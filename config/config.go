package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	FallbackPath string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "3000"),
		DBPath:       getEnv("DB_PATH", "database.db"),
		FallbackPath: getEnv("FALLBACK_PATH", "public/data/mydata.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
