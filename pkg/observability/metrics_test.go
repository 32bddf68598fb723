package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitMetricsServesPrometheus(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "credit-risk-service"})
	if err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	counter, err := otel.Meter("test").Int64Counter("credit_assessments")
	if err != nil {
		t.Fatalf("create counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "credit_assessments_total") {
		t.Errorf("expected counter in exposition, got:\n%s", rec.Body.String())
	}
}
