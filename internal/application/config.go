// Package application holds the runtime configuration shared by the CLI and
// the admin TUI.
package application

import (
	"os"
	"time"

	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

// Config is the application configuration.
type Config struct {
	APIBaseURL     string        `json:"api_base_url"`
	RequestTimeout time.Duration `json:"request_timeout"`
	PageSize       int           `json:"page_size"`
	LogLevel       string        `json:"log_level"`

	Storage StorageConfig `json:"storage"`
}

// StorageConfig holds file storage settings.
type StorageConfig struct {
	Endpoint     string   `json:"endpoint"`
	MaxFileSize  int64    `json:"max_file_size"`
	AllowedTypes []string `json:"allowed_types"`
}

// Limits converts the storage settings into enforceable upload limits.
func (s StorageConfig) Limits() storage.Limits {
	l := storage.DefaultLimits()
	if s.MaxFileSize > 0 {
		l.MaxFileSize = s.MaxFileSize
	}
	if len(s.AllowedTypes) > 0 {
		l.AllowedTypes = s.AllowedTypes
	}
	return l
}

// DefaultConfig returns the default configuration. Environment variables win
// so containerized runs need no config file.
func DefaultConfig() *Config {
	apiURL := os.Getenv("VIVLA_ADMIN_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3001/api"
	}
	storageURL := os.Getenv("VIVLA_ADMIN_STORAGE_URL")
	if storageURL == "" {
		storageURL = "http://localhost:3002/bucket"
	}

	return &Config{
		APIBaseURL:     apiURL,
		RequestTimeout: 30 * time.Second,
		PageSize:       10,
		LogLevel:       "info",
		Storage: StorageConfig{
			Endpoint: storageURL,
		},
	}
}
