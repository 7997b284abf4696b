package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crsc/internal/platform/health"
	"crsc/internal/platform/metrics"
	"crsc/internal/statuscheck"
	"crsc/pkg/testutil"
)

var validQuery = "?" + testutil.ValidStatusQuery().Encode()

type testServer struct {
	router   http.Handler
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := statuscheck.New(statuscheck.WithMetrics(m), statuscheck.WithLogger(logger))
	router := NewRouter(svc, Options{
		Logger:         logger,
		Metrics:        m,
		Health:         health.New("test"),
		RequestTimeout: time.Second,
		Clock:          testutil.FixedClock,
	})
	return testServer{router: router, registry: reg, metrics: m}
}

func (ts testServer) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_NewInfoRecord(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/status/400000000000"+validQuery)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, `<statusCheckResult>
    <statusCheckResultType>SUCCESS</statusCheckResultType>
    <status>NEW_INFO</status>
    <forename>TAYLOR</forename>
    <surname>SMITH</surname>
    <printDate class="sql-date">2023-06-15</printDate>
</statusCheckResult>`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(ts.metrics.StatusChecks.WithLabelValues("new_info")))
}

func TestRouter_HostedPath(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/crsc/api/status/100000000000"+validQuery)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, statuscheck.NotFoundXML, rec.Body.String())
}

func TestRouter_MethodNotAllowedIsPlainText(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/status/abc")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Method not allowed", rec.Body.String())
	assert.Equal(t, float64(1), promtestutil.ToFloat64(ts.metrics.StatusChecks.WithLabelValues("method_not_allowed")))
}

func TestRouter_ValidationErrorsAggregated(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/status/400000000000")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Errors: \n"+
		"- `dateOfBirth` is missing but is required.\n"+
		"- `surname` is missing but is required.\n"+
		"- `hasAgreedTermsAndConditions` is missing but is required.\n"+
		"- `organisationName` is missing but is required.\n"+
		"- `employeeSurname` is missing but is required.\n"+
		"- `employeeForename` is missing but is required.", rec.Body.String())
	assert.Equal(t, float64(6), promtestutil.ToFloat64(ts.metrics.ValidationErrors))
}

func TestRouter_LatencyLabelledByRoutePattern(t *testing.T) {
	ts := newTestServer(t)

	ts.do(http.MethodGet, "/status/200000000000"+validQuery)

	assert.Equal(t, 1, promtestutil.CollectAndCount(ts.metrics.EndpointLatency))
	count, err := promtestutil.GatherAndCount(ts.registry, "crsc_endpoint_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRouter_Health(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body health.StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, health.ServiceName, body.Service)
}

func TestOpsRouter_ServesMetricsAndProbes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.IncrementStatusChecks("new_info")
	ops := NewOpsRouter(reg, health.New("test"))

	rec := httptest.NewRecorder()
	ops.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `crsc_status_checks_total{outcome="new_info"} 1`)

	for _, path := range []string{"/health", "/health/live"} {
		rec := httptest.NewRecorder()
		ops.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_RecoversFromResponderPanic(t *testing.T) {
	var logs bytes.Buffer
	router := NewRouter(panickingResponder{}, Options{Logger: slog.New(slog.NewJSONHandler(&logs, nil))})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/200000000000", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "panic recovered")
}

type panickingResponder struct{}

func (panickingResponder) Respond(context.Context, statuscheck.Request) statuscheck.Response {
	panic("boom")
}

func TestOpsRouter_ReadinessRunsStatusSelfCheck(t *testing.T) {
	h := health.New("test")
	h.RegisterCheck("statuscheck", func(context.Context) error {
		return statuscheck.SelfCheck(testutil.FixedNow)
	})
	ops := NewOpsRouter(prometheus.NewRegistry(), h)

	rec := httptest.NewRecorder()
	ops.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body health.ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "up", body.Checks["statuscheck"])
}

func TestRouter_DoubleEncodedReferenceIsRejected(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/status/%253100000000000"+validQuery)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Errors: \n"+
		"- `disclosureRef` must be a 12-digit string, but length was 14.\n"+
		"- `disclosureRef` must contain only digits, but actual string was \"%3100000000000\".", rec.Body.String())
}

func TestRouter_SemicolonInQueryValueIsKept(t *testing.T) {
	ts := newTestServer(t)
	query := "?dateOfBirth=01%2F01%2F1990&surname=o;brien&hasAgreedTermsAndConditions=true" +
		"&organisationName=acme&employeeSurname=jones&employeeForename=sam"

	rec := ts.do(http.MethodGet, "/status/200000000000"+query)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<surname>O;BRIEN</surname>")
}
