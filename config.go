package clientkit

import (
	"errors"
	"strings"
	"time"
)

// Config carries every tunable of the client core. Zero values are filled
// from defaults by [New]; instances are intended to be configured during
// initialization and then treated as immutable.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Routes  RouteConfig
	Query   QueryConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig configures the HTTP transport under the service modules.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig configures durable session persistence.
type SessionConfig struct {
	// FilePath backs the session with a JSON file when no explicit storage
	// is wired. Ignored when WithStorage or WithRedis is used.
	FilePath string

	// RedisKey and RedisTTL apply when the session is backed by Redis.
	RedisKey string
	RedisTTL time.Duration
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig names the routes guards and the login flow navigate to.
type RouteConfig struct {
	// Login is where AuthGuard sends unauthenticated visitors.
	Login string
	// Landing is where a successful login (and RedirectIfAuthenticated)
	// sends authenticated visitors.
	Landing string
}

/*
====================================
QUERY CONFIG
====================================
*/

// QueryConfig configures the service read cache.
type QueryConfig struct {
	Enabled bool
	TTL     time.Duration
}

// AuditConfig configures the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig configures counter and latency collection.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			RedisKey: "coworkpro:session",
			RedisTTL: 30 * 24 * time.Hour,
		},
		Routes: RouteConfig{
			Login:   "/login",
			Landing: "/dashboard",
		},
		Query: QueryConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks cross-field consistency. Build calls it after defaults
// are applied.
func (c *Config) Validate() error {
	// API
	if c.API.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if c.API.Timeout < 0 {
		return errors.New("API Timeout must be >= 0")
	}

	// Routes
	if !strings.HasPrefix(c.Routes.Login, "/") {
		return errors.New("Routes Login must start with '/'")
	}
	if !strings.HasPrefix(c.Routes.Landing, "/") {
		return errors.New("Routes Landing must start with '/'")
	}
	if c.Routes.Login == c.Routes.Landing {
		return errors.New("Routes Login and Landing must differ")
	}

	// Session
	if c.Session.RedisTTL < 0 {
		return errors.New("Session RedisTTL must be >= 0")
	}

	// Query
	if c.Query.Enabled && c.Query.TTL <= 0 {
		return errors.New("Query TTL must be > 0 when query cache is enabled")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	return nil
}
