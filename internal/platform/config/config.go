// Package config builds the server configuration from the environment so main
// stays lean.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// DataDir holds the registration workbook, course content files, and the
	// site configuration document.
	DataDir      string
	WorkbookPath string

	// DatabaseURL, when set, switches the registration store to Postgres.
	DatabaseURL string

	AdminUsername string
	// AdminPasswordHash is a bcrypt hash. When empty, AdminPassword is hashed
	// at startup; the plaintext variable exists for development only.
	AdminPasswordHash string
	AdminPassword     string

	JWTSigningKey string
}

// FromEnv reads configuration from environment variables, loading a local
// .env file first when present.
func FromEnv() (Server, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := Server{
		Addr:              getenv("REGPORTAL_ADDR", ":8080"),
		DataDir:           getenv("REGPORTAL_DATA_DIR", "data"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		JWTSigningKey:     getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
	}
	cfg.WorkbookPath = getenv("REGPORTAL_WORKBOOK", cfg.DataDir+"/registrations.xlsx")

	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		// Default dev credentials; override both in production.
		cfg.AdminPassword = "python2025"
	}
	if cfg.AdminUsername == "" {
		return cfg, fmt.Errorf("ADMIN_USERNAME is empty")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
