package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration. None of it changes what
// the status endpoint answers; the validation rules are fixed.
type Server struct {
	Addr            string
	OpsAddr         string
	Environment     string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Defaults applied when the environment leaves a setting unset or unparsable.
const (
	DefaultAddr            = ":8080"
	DefaultOpsAddr         = ":9090"
	DefaultEnvironment     = "dev"
	DefaultLogLevel        = "info"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            getEnv("CRSC_ADDR", DefaultAddr),
		OpsAddr:         getEnv("CRSC_OPS_ADDR", DefaultOpsAddr),
		Environment:     getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
