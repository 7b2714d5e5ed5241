package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordCommand(t *testing.T) {
	counter, err := CommandsTotal.GetMetricWithLabelValues("test_cmd", OutcomeExecuted)
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	before := counterValue(t, counter)

	RecordCommand("test_cmd", OutcomeExecuted, 0.2)

	if got := counterValue(t, counter); got != before+1 {
		t.Errorf("expected counter %v, got %v", before+1, got)
	}
}

func TestRecordCacheAccess(t *testing.T) {
	hits, err := CacheRequests.GetMetricWithLabelValues("test_cache", "hit")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	misses, err := CacheRequests.GetMetricWithLabelValues("test_cache", "miss")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	hitsBefore := counterValue(t, hits)
	missesBefore := counterValue(t, misses)

	RecordCacheAccess("test_cache", true)
	RecordCacheAccess("test_cache", false)
	RecordCacheAccess("test_cache", false)

	if got := counterValue(t, hits); got != hitsBefore+1 {
		t.Errorf("expected %v hits, got %v", hitsBefore+1, got)
	}
	if got := counterValue(t, misses); got != missesBefore+2 {
		t.Errorf("expected %v misses, got %v", missesBefore+2, got)
	}
}

func TestRecordWikiRequest(t *testing.T) {
	tests := []struct {
		name       string
		success    bool
		wantStatus string
	}{
		{name: "successful request", success: true, wantStatus: "success"},
		{name: "failed request", success: false, wantStatus: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter, err := WikiRequestsTotal.GetMetricWithLabelValues("test_action", tt.wantStatus)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}
			before := counterValue(t, counter)

			RecordWikiRequest("test_action", 0.1, tt.success)

			if got := counterValue(t, counter); got != before+1 {
				t.Errorf("expected counter %v, got %v", before+1, got)
			}
		})
	}
}
