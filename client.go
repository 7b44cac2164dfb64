package clientkit

import (
	"context"

	"github.com/coworkpro/clientkit/api"
	"github.com/coworkpro/clientkit/crm"
	"github.com/coworkpro/clientkit/guard"
	"github.com/coworkpro/clientkit/query"
	"github.com/coworkpro/clientkit/session"
)

// Client is the assembled client core. All methods are safe for concurrent
// use after [Builder.Build].
type Client struct {
	config    Config
	session   *session.Store
	navigator session.Navigator
	api       *api.Client
	cache     *query.Cache

	auth      *crm.AuthService
	leads     *crm.LeadService
	proposals *crm.ProposalService
	centers   *crm.CenterService

	metrics *Metrics
	audit   *auditDispatcher
}

// Session exposes the underlying session store for direct state reads and
// subscriptions.
func (c *Client) Session() *session.Store {
	return c.session
}

// Hydrate restores the persisted session snapshot. Call it once at startup;
// later calls are no-ops. Guards render their fallback until it completes.
func (c *Client) Hydrate(ctx context.Context) {
	c.session.Hydrate(ctx)
}

// Login authenticates against the backend and, on success, persists the
// session and navigates to the landing route.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.session.Login(ctx, email, password)
}

// Logout tells the backend to revoke the token, then clears the local
// session unconditionally. Revocation runs first because the transport reads
// the bearer token from durable storage per request; clearing first would
// send the request unauthenticated. Revocation is best-effort: its failure
// never keeps the local session alive.
func (c *Client) Logout(ctx context.Context) {
	_ = c.auth.Logout(ctx)
	c.session.Logout()
}

// AuthGuard returns a started guard protecting authenticated routes. The
// returned stop function cancels its subscription.
func (c *Client) AuthGuard() (*guard.AuthGuard, func()) {
	g := guard.NewAuthGuard(c.session, c.navigator, c.config.Routes.Login, guard.Options{
		MetricInc: c.metricInc,
		Metric:    int(MetricGuardRedirectLogin),
	})
	return g, g.Start()
}

// RedirectIfAuthenticated returns a started guard for guest-only routes
// such as the login page.
func (c *Client) RedirectIfAuthenticated() (*guard.RedirectIfAuthenticated, func()) {
	g := guard.NewRedirectIfAuthenticated(c.session, c.navigator, c.config.Routes.Landing, guard.Options{
		MetricInc: c.metricInc,
		Metric:    int(MetricGuardRedirectAway),
	})
	return g, g.Start()
}

// Auth exposes the authentication service for flows the session store does
// not own (refresh, profile lookup).
func (c *Client) Auth() *crm.AuthService {
	return c.auth
}

// Leads exposes the lead service.
func (c *Client) Leads() *crm.LeadService {
	return c.leads
}

// Proposals exposes the proposal service.
func (c *Client) Proposals() *crm.ProposalService {
	return c.proposals
}

// Centers exposes the center service.
func (c *Client) Centers() *crm.CenterService {
	return c.centers
}

// API exposes the raw transport for endpoints without a typed service.
func (c *Client) API() *api.Client {
	return c.api
}

// MetricsSnapshot copies the current counters and histograms.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events discarded under backpressure.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close drains and stops the audit dispatcher. The client must not be used
// after Close.
func (c *Client) Close() {
	c.audit.Close()
}

func (c *Client) metricInc(id int) {
	c.metrics.Inc(MetricID(id))
}
