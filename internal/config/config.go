package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything not supplied on the command line. The dbname,
// port and user come as positional arguments; host, password and the rest
// come from the environment.
type Config struct {
	Host     string
	Password string
	SSLMode  string
	LogLevel string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	return Config{
		Host:     getenv("PGHOST", "localhost"),
		Password: getenv("PGPASSWORD", ""),
		SSLMode:  getenv("PGSSLMODE", "disable"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}
}

// DSN combines the positional arguments with the environment-derived parts
// into a pgx connection string.
func (c Config) DSN(dbname, port, user string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, c.Password, c.Host, port, dbname, c.SSLMode)
}
