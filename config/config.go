// Package config resolves runtime settings from the environment. The
// mains load a .env file first; everything here reads plain env vars with
// the historical defaults of the project.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Database holds the PostgreSQL connection settings.
type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Paths holds the filesystem layout of the pipeline.
type Paths struct {
	BronzeDir string // staging area for raw yearly CSVs
	SilverDir string // output area for the audit CSV
}

// Settings is the full runtime configuration.
type Settings struct {
	Database  Database
	Paths     Paths
	KeepAlive bool
}

// FromEnv builds Settings from environment variables, applying defaults
// for anything unset.
func FromEnv() Settings {
	return Settings{
		Database: Database{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			Name:     getenv("DB_NAME", "sinistros_prf"),
			User:     getenv("DB_USER", "admin"),
			Password: getenv("DB_PASSWORD", "admin123"),
		},
		Paths: Paths{
			BronzeDir: absolute(getenv("BRONZE_PATH", "bronze/data")),
			SilverDir: absolute(getenv("SILVER_OUTPUT_PATH", "silver/data")),
		},
		KeepAlive: os.Getenv("KEEP_ALIVE") == "true",
	}
}

// ConnectionString renders the settings as a lib/pq connection URL.
func (d Database) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// absolute resolves a path against the working directory when relative.
func absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	root, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(root, path)
}
