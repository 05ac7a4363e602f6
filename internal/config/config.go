// Package config loads application configuration from environment
// variables. A .env file in the working directory is honored when
// present so local development does not need exported variables.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	UploadDir string // root directory for uploaded photos
}

// Load reads configuration values from the environment (and .env, if
// one exists) and returns a Config.
func Load() Config {
	// Missing .env is fine; real deployments export variables directly.
	_ = godotenv.Load()

	return Config{
		Env:       getenv("APP_ENV", "dev"),
		Port:      getenv("APP_PORT", "3001"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"), // empty allowed
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		UploadDir: getenv("UPLOAD_DIR", "uploads"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
