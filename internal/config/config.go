package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	JWTAlgorithm string
	GinMode      string
	Port         string
}

func Load() *Config {
	// A missing .env file is fine, the process environment takes over.
	_ = godotenv.Load()

	return &Config{
		DBHost:       getEnv("POSTGRES_HOST", "localhost"),
		DBPort:       getEnv("POSTGRES_PORT", "5432"),
		DBUser:       getEnv("TODO_USER", "todouser"),
		DBPassword:   getEnv("TODO_PASSWORD", "todopassword"),
		DBName:       getEnv("TODO_DB", "todo"),
		JWTSecret:    getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTAlgorithm: getEnv("ALGORITHM", "HS256"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		Port:         getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
