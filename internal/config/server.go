package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig holds HTTP server settings read from the environment.
type ServerConfig struct {
	Port            int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// NewServerConfig reads PORT (default 8080), SERVER_MAX_BODY_BYTES
// (default 10 MiB) and SERVER_SHUTDOWN_TIMEOUT (default 30s).
func NewServerConfig() (*ServerConfig, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	maxBody, err := envInt("SERVER_MAX_BODY_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}

	shutdown := 30 * time.Second
	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT"); v != "" {
		shutdown, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %v", err)
		}
	}

	config := &ServerConfig{
		Port:            port,
		MaxBodyBytes:    int64(maxBody),
		ShutdownTimeout: shutdown,
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port)
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("SERVER_MAX_BODY_BYTES must be positive, got: %d", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive, got: %s", c.ShutdownTimeout)
	}
	return nil
}
