package clientkit

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// FromEnv builds a Config from COWORK_* environment variables, layered on
// top of the defaults. A .env file in the working directory is loaded first
// when present; real environment variables win over file entries.
//
// Recognized variables:
//
//	COWORK_API_BASE_URL      base URL of the backend (required to Build)
//	COWORK_API_TIMEOUT       request timeout, Go duration syntax
//	COWORK_SESSION_FILE      path of the file-backed session snapshot
//	COWORK_SESSION_REDIS_KEY Redis key of the session snapshot
//	COWORK_SESSION_REDIS_TTL snapshot TTL in Redis, Go duration syntax
//	COWORK_ROUTE_LOGIN       login route
//	COWORK_ROUTE_LANDING     post-login landing route
//	COWORK_QUERY_ENABLED     enable the service read cache
//	COWORK_QUERY_TTL         read cache TTL, Go duration syntax
//	COWORK_AUDIT_ENABLED     enable the audit dispatcher
//	COWORK_AUDIT_BUFFER      audit dispatcher buffer size
//	COWORK_METRICS_ENABLED   enable metric counters
//	COWORK_METRICS_LATENCY   enable the request latency histogram
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if v := os.Getenv("COWORK_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if d, ok := envDuration("COWORK_API_TIMEOUT"); ok {
		cfg.API.Timeout = d
	}
	if v := os.Getenv("COWORK_SESSION_FILE"); v != "" {
		cfg.Session.FilePath = v
	}
	if v := os.Getenv("COWORK_SESSION_REDIS_KEY"); v != "" {
		cfg.Session.RedisKey = v
	}
	if d, ok := envDuration("COWORK_SESSION_REDIS_TTL"); ok {
		cfg.Session.RedisTTL = d
	}
	if v := os.Getenv("COWORK_ROUTE_LOGIN"); v != "" {
		cfg.Routes.Login = v
	}
	if v := os.Getenv("COWORK_ROUTE_LANDING"); v != "" {
		cfg.Routes.Landing = v
	}
	if b, ok := envBool("COWORK_QUERY_ENABLED"); ok {
		cfg.Query.Enabled = b
	}
	if d, ok := envDuration("COWORK_QUERY_TTL"); ok {
		cfg.Query.TTL = d
	}
	if b, ok := envBool("COWORK_AUDIT_ENABLED"); ok {
		cfg.Audit.Enabled = b
	}
	if n, ok := envInt("COWORK_AUDIT_BUFFER"); ok {
		cfg.Audit.BufferSize = n
	}
	if b, ok := envBool("COWORK_METRICS_ENABLED"); ok {
		cfg.Metrics.Enabled = b
	}
	if b, ok := envBool("COWORK_METRICS_LATENCY"); ok {
		cfg.Metrics.EnableLatencyHistograms = b
	}

	return cfg
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
