package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/clotmeter/clotmeter/pkg/gauge"
)

// scrape serves GET /metrics from r and parses the body back into families.
func scrape(t *testing.T, r *Registry) map[string]*dto.MetricFamily {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type: got %q, want text/plain", ct)
	}

	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(rr.Body)
	if err != nil {
		t.Fatalf("parse exposition: %v", err)
	}
	return mfs
}

// labelValue returns the counter value of the series with label == value.
func labelValue(mf *dto.MetricFamily, label, value string) (float64, bool) {
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label && lp.GetValue() == value {
				return m.GetCounter().GetValue(), true
			}
		}
	}
	return 0, false
}

func TestRegistry_ZeroSeeded(t *testing.T) {
	mfs := scrape(t, New())

	calc := mfs[NameCalculations]
	if calc == nil {
		t.Fatalf("%s missing", NameCalculations)
	}
	if calc.GetType() != dto.MetricType_COUNTER {
		t.Errorf("type: got %v, want COUNTER", calc.GetType())
	}
	for _, c := range []string{"green", "yellow", "red"} {
		if v, ok := labelValue(calc, "color", c); !ok || v != 0 {
			t.Errorf("color=%s: got (%v, %v), want (0, true)", c, v, ok)
		}
	}
	if len(mfs[NameInvalidInputs].GetMetric()) != 3 {
		t.Errorf("invalid series: got %d, want 3", len(mfs[NameInvalidInputs].GetMetric()))
	}
}

func TestRegistry_CountsByColorAndSurface(t *testing.T) {
	r := New()
	r.ObserveCalculation(gauge.Yellow)
	r.ObserveCalculation(gauge.Yellow)
	r.ObserveCalculation(gauge.Red)
	r.ObserveInvalid(SurfaceForm)

	mfs := scrape(t, r)
	if v, _ := labelValue(mfs[NameCalculations], "color", "yellow"); v != 2 {
		t.Errorf("yellow: got %v, want 2", v)
	}
	if v, _ := labelValue(mfs[NameCalculations], "color", "red"); v != 1 {
		t.Errorf("red: got %v, want 1", v)
	}
	if v, _ := labelValue(mfs[NameInvalidInputs], "surface", "form"); v != 1 {
		t.Errorf("form: got %v, want 1", v)
	}
	if v, _ := labelValue(mfs[NameInvalidInputs], "surface", "api"); v != 0 {
		t.Errorf("api: got %v, want 0", v)
	}
}

func TestRegistry_ConcurrentObserve(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ObserveCalculation(gauge.Green)
			r.ObserveInvalid(SurfaceWS)
		}()
	}
	wg.Wait()

	if got := r.Calculations(gauge.Green); got != 50 {
		t.Errorf("green: got %v, want 50", got)
	}
	if got := r.Invalid(SurfaceWS); got != 50 {
		t.Errorf("ws: got %v, want 50", got)
	}
}

func TestGather_SortedByLabel(t *testing.T) {
	mfs := New().Gather()
	var got []string
	for _, m := range mfs[0].GetMetric() {
		got = append(got, m.GetLabel()[0].GetValue())
	}
	want := []string{"green", "red", "yellow"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("label order: got %v, want %v", got, want)
	}
}
