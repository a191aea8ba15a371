package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mohammad-safakhou/technote/config"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{}, Options{ServiceName: "test"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if tel.Handler() == nil {
		t.Fatal("expected a default handler")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestSetupEnabledExposesRecordedMetrics(t *testing.T) {
	ctx := context.Background()
	tel, err := Setup(ctx, config.TelemetryConfig{Enabled: true}, Options{ServiceName: "test", ServiceVersion: "dev"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer func() { _ = tel.Shutdown(ctx) }()

	RecordRefresh(ctx, "ok", 3)
	RecordToggle(ctx, "like", true)

	rec := httptest.NewRecorder()
	tel.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"article_refresh", "engagement_toggles"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition:\n%s", want, body)
		}
	}
}
