package web

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/clotmeter/clotmeter/pkg/clot"
	"github.com/clotmeter/clotmeter/pkg/gauge"
	"github.com/clotmeter/clotmeter/pkg/types"
	"github.com/clotmeter/clotmeter/server/internal/config"
	"github.com/clotmeter/clotmeter/server/internal/metrics"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// maxFormBytes caps form bodies; the form is five short fields.
const maxFormBytes = 16 << 10

// Handler serves the calculator form.
type Handler struct {
	metrics *metrics.Registry
	ui      atomic.Pointer[config.UIConfig]
	mux     *http.ServeMux
}

// page is the template view model.
type page struct {
	Title    string
	Subtitle string
	Values   formValues
	Error    string
	Result   *result
}

type result struct {
	Summary types.Summary
	Color   gauge.Color
	Gauge   template.HTML
}

// New creates a Handler rendering with ui and recording outcomes in reg.
func New(reg *metrics.Registry, ui config.UIConfig) *Handler {
	h := &Handler{metrics: reg, mux: http.NewServeMux()}
	h.SetUI(ui)

	h.mux.HandleFunc("GET /{$}", h.show)
	h.mux.HandleFunc("POST /{$}", h.submit)

	return h
}

// SetUI swaps the presentation settings used by subsequent requests.
func (h *Handler) SetUI(ui config.UIConfig) {
	h.ui.Store(&ui)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// show renders the empty form.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPage(defaultValues()))
}

// submit calculates from the posted form and renders the result or the
// invalid-input message, keeping the entered values in the form.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form submission", http.StatusBadRequest)
		return
	}

	vals := readValues(r.PostForm)
	p := h.newPage(vals)

	res, err := calculate(vals)
	if err != nil {
		h.metrics.ObserveInvalid(metrics.SurfaceForm)
		slog.Debug("web: invalid input", "err", err)
		p.Error = types.InvalidInputMessage
		h.render(w, http.StatusUnprocessableEntity, p)
		return
	}

	ui := h.ui.Load()
	bar := gauge.New(res.Probability, gauge.Options{Width: ui.GaugeWidth, Height: ui.GaugeHeight})
	h.metrics.ObserveCalculation(bar.Color)

	p.Result = &result{
		Summary: types.Summarize(res),
		Color:   bar.Color,
		Gauge:   template.HTML(bar.SVG()), //nolint:gosec // generated from numbers and fixed colour names
	}
	h.render(w, http.StatusOK, p)
}

func calculate(vals formValues) (clot.Result, error) {
	in, err := vals.input()
	if err != nil {
		return clot.Result{}, errors.Join(clot.ErrInvalidInput, err)
	}
	return clot.Calculate(in)
}

func (h *Handler) newPage(vals formValues) page {
	ui := h.ui.Load()
	return page{Title: ui.Title, Subtitle: ui.Subtitle, Values: vals}
}

func (h *Handler) render(w http.ResponseWriter, code int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pageTmpl.Execute(w, p); err != nil {
		slog.Error("web: render failed", "err", err)
	}
}
