package metrics

import (
	"log/slog"
	"net/http"
	"sort"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/clotmeter/clotmeter/pkg/gauge"
)

// Metric family names.
const (
	NameCalculations  = "clotmeter_calculations_total"
	NameInvalidInputs = "clotmeter_invalid_inputs_total"
)

// Surfaces that can reject input.
const (
	SurfaceAPI  = "api"
	SurfaceForm = "form"
	SurfaceWS   = "ws"
)

// Registry holds the server's counters.
type Registry struct {
	mu           sync.Mutex
	calculations map[gauge.Color]float64
	invalid      map[string]float64
}

// New creates a Registry with every known label pre-seeded at zero, so the
// families are present from the first scrape.
func New() *Registry {
	r := &Registry{
		calculations: make(map[gauge.Color]float64),
		invalid:      make(map[string]float64),
	}
	for _, c := range []gauge.Color{gauge.Green, gauge.Yellow, gauge.Red} {
		r.calculations[c] = 0
	}
	for _, s := range []string{SurfaceAPI, SurfaceForm, SurfaceWS} {
		r.invalid[s] = 0
	}
	return r
}

// ObserveCalculation counts one successful calculation in tier c.
func (r *Registry) ObserveCalculation(c gauge.Color) {
	r.mu.Lock()
	r.calculations[c]++
	r.mu.Unlock()
}

// ObserveInvalid counts one rejected input on surface.
func (r *Registry) ObserveInvalid(surface string) {
	r.mu.Lock()
	r.invalid[surface]++
	r.mu.Unlock()
}

// Calculations returns the current count for tier c.
func (r *Registry) Calculations(c gauge.Color) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calculations[c]
}

// Invalid returns the current rejection count for surface.
func (r *Registry) Invalid(surface string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalid[surface]
}

// Gather returns a point-in-time copy of all metric families, sorted by name.
func (r *Registry) Gather() []*dto.MetricFamily {
	r.mu.Lock()
	defer r.mu.Unlock()

	calc := make(map[string]float64, len(r.calculations))
	for c, v := range r.calculations {
		calc[string(c)] = v
	}

	return []*dto.MetricFamily{
		counterFamily(NameCalculations, "Successful probability calculations by gauge colour.", "color", calc),
		counterFamily(NameInvalidInputs, "Calculations rejected as invalid input by surface.", "surface", r.invalid),
	}
}

// ServeHTTP writes all families in the text exposition format.
func (r *Registry) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range r.Gather() {
		if err := enc.Encode(mf); err != nil {
			slog.Error("metrics: encode failed", "family", mf.GetName(), "err", err)
			return
		}
	}
}

// counterFamily builds a counter family with one series per label value.
func counterFamily(name, help, label string, values map[string]float64) *dto.MetricFamily {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mf := &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, k := range keys {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String(label), Value: proto.String(k)}},
			Counter: &dto.Counter{Value: proto.Float64(values[k])},
		})
	}
	return mf
}
