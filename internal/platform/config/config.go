package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration

	// SnapPrecision is the decimal precision used when snapping derived
	// bounds onto device-supported value lists.
	SnapPrecision int32
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DOSEGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	shutdown := 10 * time.Second
	if v := os.Getenv("DOSEGUARD_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			shutdown = d
		}
	}

	precision := int32(3)
	if v := os.Getenv("DOSEGUARD_SNAP_PRECISION"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 32); err == nil && p > 0 {
			precision = int32(p)
		}
	}

	return Server{
		Addr:            addr,
		ShutdownTimeout: shutdown,
		SnapPrecision:   precision,
	}
}
