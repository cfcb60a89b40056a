package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("/api/v1/hotels", "GET", "200"))

	ObserveHTTP("/api/v1/hotels", "GET", 200, 12*time.Millisecond)
	ObserveHTTP("/api/v1/hotels", "GET", 200, 40*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("/api/v1/hotels", "GET", "200"))
	if after-before != 2 {
		t.Errorf("request counter moved by %v, want 2", after-before)
	}
}

func TestObserveCache(t *testing.T) {
	before := testutil.ToFloat64(CacheEvents.WithLabelValues("hotel", "hit"))
	ObserveCache("hotel", "hit")
	after := testutil.ToFloat64(CacheEvents.WithLabelValues("hotel", "hit"))
	if after-before != 1 {
		t.Errorf("cache counter moved by %v, want 1", after-before)
	}
}

func TestObserveTxnRetry(t *testing.T) {
	before := testutil.ToFloat64(TxnRetries)
	ObserveTxnRetry()
	if got := testutil.ToFloat64(TxnRetries) - before; got != 1 {
		t.Errorf("retry counter moved by %v, want 1", got)
	}
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	reg := InitRegistry()
	ObserveHTTP("/api/v1/hotels/:id", "GET", 200, 5*time.Millisecond)
	ObserveTxnRetry()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, metric := range []string{
		"staybay_http_requests_total",
		"staybay_http_request_duration_seconds",
		"staybay_txn_retries_total",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("exposition is missing %s", metric)
		}
	}
}
