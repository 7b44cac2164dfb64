package internaldefs

import (
	clientkit "github.com/coworkpro/clientkit"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   clientkit.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   clientkit.MetricID
	Name string
	Help string
}

// CounterDefs maps every counter to its exposition name.
var CounterDefs = []CounterDef{
	{ID: clientkit.MetricLoginSuccess, Name: "cowork_login_success_total", Help: "Successful login attempts."},
	{ID: clientkit.MetricLoginFailure, Name: "cowork_login_failure_total", Help: "Failed login attempts."},
	{ID: clientkit.MetricLogout, Name: "cowork_logout_total", Help: "Logout operations."},
	{ID: clientkit.MetricHydration, Name: "cowork_hydration_total", Help: "Completed session hydration passes."},
	{ID: clientkit.MetricGuardRedirectLogin, Name: "cowork_guard_redirect_login_total", Help: "Guard redirects to the login route."},
	{ID: clientkit.MetricGuardRedirectAway, Name: "cowork_guard_redirect_away_total", Help: "Guard redirects away from guest-only routes."},
	{ID: clientkit.MetricRequestSuccess, Name: "cowork_request_success_total", Help: "Successful API requests."},
	{ID: clientkit.MetricRequestFailure, Name: "cowork_request_failure_total", Help: "Failed API requests."},
	{ID: clientkit.MetricRequestUnauthenticated, Name: "cowork_request_unauthenticated_total", Help: "API requests sent without a token."},
	{ID: clientkit.MetricCacheHit, Name: "cowork_cache_hit_total", Help: "Query cache hits."},
	{ID: clientkit.MetricCacheMiss, Name: "cowork_cache_miss_total", Help: "Query cache misses."},
	{ID: clientkit.MetricCacheInvalidation, Name: "cowork_cache_invalidation_total", Help: "Query cache entries invalidated by mutations."},
	{ID: clientkit.MetricPDFGenerated, Name: "cowork_pdf_generated_total", Help: "Rendered proposal documents."},
}

// HistogramDefs maps every histogram to its exposition name.
var HistogramDefs = []HistogramDef{
	{ID: clientkit.MetricRequestLatency, Name: "cowork_request_latency_seconds", Help: "API request latency histogram."},
}

// HistogramBounds are the upper bounds of the core's fixed buckets, in
// seconds, as rendered in Prometheus le labels.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is the bound list in identifier-safe form, for
// backends that cannot carry labels.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
