package clientkit

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coworkpro/clientkit/api"
	"github.com/coworkpro/clientkit/crm"
	"github.com/coworkpro/clientkit/internal/audit"
	"github.com/coworkpro/clientkit/query"
	"github.com/coworkpro/clientkit/session"
	"github.com/coworkpro/clientkit/storage"
)

// Builder assembles a [Client]. Builders are single-use: Build consumes the
// builder and further calls fail.
type Builder struct {
	config Config

	httpClient *http.Client
	storage    storage.Store
	redis      *redis.Client
	navigator  session.Navigator
	auditSink  audit.Sink
	warn       func(format string, args ...any)

	built bool
}

// New returns a builder seeded with [defaultConfig] values.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend base URL.
func (b *Builder) WithBaseURL(url string) *Builder {
	b.config.API.BaseURL = url
	return b
}

// WithHTTPClient overrides the HTTP client used for all requests.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithStorage sets the durable session storage backend directly.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.storage = store
	return b
}

// WithRedis backs the session with Redis, using the configured key and TTL.
// Ignored when WithStorage was also called.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithNavigator wires the host application's router. Without one, guard
// redirects and the post-login navigation are silently skipped.
func (b *Builder) WithNavigator(nav session.Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithAuditSink sets the sink for audit events and implies Audit.Enabled.
func (b *Builder) WithAuditSink(sink audit.Sink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithWarnLogger sets the printf-style logger for non-fatal internal
// failures (persist errors, audit fallbacks).
func (b *Builder) WithWarnLogger(warn func(format string, args ...any)) *Builder {
	b.warn = warn
	return b
}

// WithMetricsEnabled toggles counter collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the request latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and wires the full client. Build does
// no I/O: the session stays un-hydrated until [Client.Hydrate] and the first
// network call happens in a service method.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- SESSION STORAGE --------
	store := b.storage
	if store == nil {
		switch {
		case b.redis != nil:
			store = storage.NewRedis(b.redis, cfg.Session.RedisKey, cfg.Session.RedisTTL)
		case cfg.Session.FilePath != "":
			store = storage.NewFile(cfg.Session.FilePath)
		default:
			return nil, ErrStorageRequired
		}
	}

	// -------- OBSERVABILITY --------
	metrics := NewMetrics(cfg.Metrics)
	dispatcher := newAuditDispatcher(cfg.Audit, b.auditSink)

	metricInc := func(id int) {
		metrics.Inc(MetricID(id))
	}

	// -------- TRANSPORT --------
	httpClient := b.httpClient
	if httpClient == nil {
		timeout := cfg.API.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	apiClient, err := api.New(api.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: httpClient,
		Tokens:     session.Tokens{Storage: store},
		MetricInc:  metricInc,
		Metrics: api.RequestMetrics{
			Success:         int(MetricRequestSuccess),
			Failure:         int(MetricRequestFailure),
			Unauthenticated: int(MetricRequestUnauthenticated),
		},
		Observe: func(d time.Duration) {
			metrics.Observe(MetricRequestLatency, d)
		},
	})
	if err != nil {
		return nil, err
	}

	// -------- QUERY CACHE --------
	var cache *query.Cache
	if cfg.Query.Enabled {
		cache = query.New(query.Options{
			TTL:       cfg.Query.TTL,
			MetricInc: metricInc,
			Metrics: query.CacheMetrics{
				Hit:          int(MetricCacheHit),
				Miss:         int(MetricCacheMiss),
				Invalidation: int(MetricCacheInvalidation),
			},
		})
	}

	// -------- SERVICES --------
	auth := crm.NewAuthService(apiClient)
	leads := crm.NewLeadService(apiClient, cache)
	proposals := crm.NewProposalService(apiClient, cache, metricInc, int(MetricPDFGenerated))
	centers := crm.NewCenterService(apiClient, cache)

	// -------- SESSION STORE --------
	sessionStore, err := session.NewStore(session.Options{
		Storage: store,
		Authenticator: session.AuthenticatorFunc(func(ctx context.Context, email, password string) (session.Credentials, error) {
			result, err := auth.Login(ctx, email, password)
			if err != nil {
				return session.Credentials{}, err
			}
			return session.Credentials{
				Token: result.Token,
				User: session.User{
					ID:    result.User.ID,
					Name:  result.User.Name,
					Email: result.User.Email,
					Role:  result.User.Role,
				},
			}, nil
		}),
		Navigator: b.navigator,
		Landing:   cfg.Routes.Landing,
		Emit:      dispatcher.Emit,
		MetricInc: metricInc,
		Metrics: session.Metrics{
			LoginSuccess: int(MetricLoginSuccess),
			LoginFailure: int(MetricLoginFailure),
			Logout:       int(MetricLogout),
			Hydration:    int(MetricHydration),
		},
		Warn: b.warn,
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Client{
		config:    cfg,
		session:   sessionStore,
		navigator: b.navigator,
		api:       apiClient,
		cache:     cache,
		auth:      auth,
		leads:     leads,
		proposals: proposals,
		centers:   centers,
		metrics:   metrics,
		audit:     dispatcher,
	}, nil
}
