package guard

import (
	"sync"

	"github.com/coworkpro/clientkit/session"
)

// RedirectIfAuthenticated is the mirror policy of [AuthGuard]: entry routes
// (typically the login form) render their content only for logged-out
// visitors, while an authenticated session is sent to the configured target.
type RedirectIfAuthenticated struct {
	session   Session
	nav       session.Navigator
	target    string
	metricInc func(int)
	metric    int

	mu       sync.Mutex
	last     session.Phase
	decision Decision
}

// NewRedirectIfAuthenticated creates the mirror guard. An empty target
// defaults to "/dashboard".
func NewRedirectIfAuthenticated(s Session, nav session.Navigator, target string, opts Options) *RedirectIfAuthenticated {
	if target == "" {
		target = "/dashboard"
	}
	return &RedirectIfAuthenticated{
		session:   s,
		nav:       nav,
		target:    target,
		metricInc: opts.MetricInc,
		metric:    opts.Metric,
		last:      phaseNone,
		decision:  DecisionFallback,
	}
}

// Start subscribes to state changes and then evaluates the current state.
// Subscribing first means a mutation landing during Start is delivered
// rather than silently missed. The returned function stops the guard.
func (g *RedirectIfAuthenticated) Start() func() {
	stop := g.session.Subscribe(func(st session.State) {
		g.Evaluate(st)
	})
	g.Evaluate(g.session.State())
	return stop
}

// Evaluate runs the transition table against st. Entering the authenticated
// phase issues one navigation to the target.
func (g *RedirectIfAuthenticated) Evaluate(st session.State) Decision {
	phase := st.Phase()

	g.mu.Lock()
	entered := phase != g.last
	g.last = phase

	switch phase {
	case session.PhaseAuthenticated:
		g.decision = DecisionNone
	case session.PhaseUnauthenticated:
		g.decision = DecisionContent
	default:
		g.decision = DecisionFallback
	}
	decision := g.decision
	g.mu.Unlock()

	if entered && phase == session.PhaseAuthenticated {
		if g.nav != nil {
			g.nav.Navigate(g.target)
		}
		if g.metricInc != nil {
			g.metricInc(g.metric)
		}
	}
	return decision
}

// Decision returns the most recent render decision.
func (g *RedirectIfAuthenticated) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}
