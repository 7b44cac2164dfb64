package guard

import (
	"sync"

	"github.com/coworkpro/clientkit/session"
)

// Decision is what a guard tells its host to render.
type Decision int

const (
	// DecisionFallback renders the loading fallback. No navigation happens.
	DecisionFallback Decision = iota
	// DecisionContent renders the wrapped content.
	DecisionContent
	// DecisionNone renders nothing; a navigation has been issued.
	DecisionNone
)

func (d Decision) String() string {
	switch d {
	case DecisionFallback:
		return "fallback"
	case DecisionContent:
		return "content"
	case DecisionNone:
		return "none"
	default:
		return "unknown"
	}
}

// phaseNone marks "no phase seen yet" so the first evaluation counts as an
// entry transition.
const phaseNone session.Phase = -1

// Session is the slice of the session store a guard needs: a current state
// read plus change subscription. *session.Store satisfies it.
type Session interface {
	State() session.State
	Subscribe(fn func(session.State)) func()
}

// Options tunes a guard. The zero value is usable.
type Options struct {
	// MetricInc and Metric report issued redirects to the host's metrics.
	MetricInc func(id int)
	Metric    int
}

// AuthGuard protects a route subtree: pending renders the fallback,
// authenticated renders content, unauthenticated renders nothing and
// navigates to the login route once per entry into that phase.
type AuthGuard struct {
	session    Session
	nav        session.Navigator
	loginRoute string
	metricInc  func(int)
	metric     int

	mu       sync.Mutex
	last     session.Phase
	decision Decision
}

// NewAuthGuard creates a guard redirecting to loginRoute (default "/login").
func NewAuthGuard(s Session, nav session.Navigator, loginRoute string, opts Options) *AuthGuard {
	if loginRoute == "" {
		loginRoute = "/login"
	}
	return &AuthGuard{
		session:    s,
		nav:        nav,
		loginRoute: loginRoute,
		metricInc:  opts.MetricInc,
		metric:     opts.Metric,
		last:       phaseNone,
		decision:   DecisionFallback,
	}
}

// Start subscribes to state changes and then evaluates the current state,
// so the decision is re-run on each relevant mutation, not just at mount.
// Subscribing first means a mutation landing during Start is delivered
// rather than silently missed. The returned function stops the guard.
func (g *AuthGuard) Start() func() {
	stop := g.session.Subscribe(func(st session.State) {
		g.Evaluate(st)
	})
	g.Evaluate(g.session.State())
	return stop
}

// Evaluate runs the transition table against st and returns the render
// decision. Entering the unauthenticated phase issues the login redirect;
// staying in it does not.
func (g *AuthGuard) Evaluate(st session.State) Decision {
	phase := st.Phase()

	g.mu.Lock()
	entered := phase != g.last
	g.last = phase

	switch phase {
	case session.PhaseAuthenticated:
		g.decision = DecisionContent
	case session.PhaseUnauthenticated:
		g.decision = DecisionNone
	default:
		g.decision = DecisionFallback
	}
	decision := g.decision
	g.mu.Unlock()

	if entered && phase == session.PhaseUnauthenticated {
		if g.nav != nil {
			g.nav.Navigate(g.loginRoute)
		}
		if g.metricInc != nil {
			g.metricInc(g.metric)
		}
	}
	return decision
}

// Decision returns the most recent render decision.
func (g *AuthGuard) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}
