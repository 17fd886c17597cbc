package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := NewOrderMetrics()

	if metrics == nil {
		t.Fatal("NewOrderMetrics should not return nil")
	}
	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersDeleted == nil {
		t.Error("ordersDeleted counter should not be nil")
	}
	if metrics.ordersFailed == nil {
		t.Error("ordersFailed counter should not be nil")
	}
	if metrics.createDuration == nil {
		t.Error("createDuration histogram should not be nil")
	}
	if metrics.queryDuration == nil {
		t.Error("queryDuration histogram vec should not be nil")
	}
	if metrics.httpRequests == nil {
		t.Error("httpRequests counter vec should not be nil")
	}
}

func TestNewOrderMetrics_Reentrant(t *testing.T) {
	// Повторный вызов не должен паниковать на уже зарегистрированных коллекторах.
	first := NewOrderMetrics()
	second := NewOrderMetrics()

	if first == nil || second == nil {
		t.Fatal("expected both instances")
	}
}

func TestRecordOrderCreated(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordOrderCreated()
	metrics.RecordOrderCreated()

	var m dto.Metric
	if err := metrics.ordersCreated.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected counter value 2, got %v", got)
	}
}

func TestRecordCreateDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordCreateDuration(150 * time.Millisecond)

	var m dto.Metric
	if err := metrics.createDuration.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("expected 1 sample, got %v", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordHTTPRequest("GET", "/api/orders", "200")
	metrics.RecordHTTPRequest("GET", "/api/orders", "200")
	metrics.RecordHTTPRequest("POST", "/api/orders", "201")

	counter, err := metrics.httpRequests.GetMetricWithLabelValues("GET", "/api/orders", "200")
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected counter value 2, got %v", got)
	}
}
