package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return New("test", prometheus.NewRegistry())
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("GET", "/matches", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/matches", 204, 10*time.Millisecond)
	m.RecordHTTPRequest("POST", "/connections", 409, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/matches", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/connections", "4xx")))
}

func TestWorkflowCounters(t *testing.T) {
	m := newTestMetrics()

	m.RecordConnection("pending")
	m.RecordConnection("pending")
	m.RecordConnection("accepted")
	m.RecordTeamCreated()
	m.RecordTaskTransition("moved")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConnectionRequestsTotal.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionRequestsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TeamsCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TaskTransitionsTotal.WithLabelValues("moved")))
}

func TestCacheCounters(t *testing.T) {
	m := newTestMetrics()

	m.RecordCacheHit("matches")
	m.RecordCacheMiss("matches")
	m.RecordCacheMiss("matches")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("matches")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("matches")))
}

func TestStatusCodeToString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
		{100, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusCodeToString(tt.code))
	}
}
