package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/clotmeter/clotmeter/pkg/clot"
	"github.com/clotmeter/clotmeter/pkg/gauge"
	"github.com/clotmeter/clotmeter/pkg/types"
	"github.com/clotmeter/clotmeter/server/internal/metrics"
)

// maxBodyBytes caps request bodies; a request is five numbers.
const maxBodyBytes = 64 << 10

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	metrics *metrics.Registry
	router  chi.Router
}

// New creates a Handler that records outcomes in reg and registers all routes.
func New(reg *metrics.Registry) http.Handler {
	h := &Handler{metrics: reg, router: chi.NewRouter()}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.Recoverer)
	h.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonErr(w, http.StatusNotFound, "not found")
	})
	h.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	h.router.Get("/api/v1/health", h.health)
	h.router.Post("/api/v1/probability", h.probability)
	h.router.Get("/api/v1/gauge.svg", h.gaugeSVG)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Assess runs the calculator for req and returns the client view with a fresh
// assessment ID. The error is clot.ErrInvalidInput for rejected inputs.
func Assess(req types.AssessmentRequest) (types.Assessment, error) {
	res, err := clot.Calculate(req.Input())
	if err != nil {
		return types.Assessment{}, err
	}
	return types.NewAssessment(uuid.NewString(), res), nil
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// probability returns POST /api/v1/probability — one calculation.
func (h *Handler) probability(w http.ResponseWriter, r *http.Request) {
	var req types.AssessmentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	a, err := Assess(req)
	if errors.Is(err, clot.ErrInvalidInput) {
		h.metrics.ObserveInvalid(metrics.SurfaceAPI)
		slog.Debug("api: invalid input", "request_id", middleware.GetReqID(r.Context()))
		jsonErr(w, http.StatusUnprocessableEntity, types.InvalidInputMessage)
		return
	}
	if err != nil {
		jsonErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.metrics.ObserveCalculation(gauge.Color(a.Color))
	jsonResp(w, http.StatusOK, a)
}

// gaugeSVG returns GET /api/v1/gauge.svg?p=<probability>[&width=&height=].
func (h *Handler) gaugeSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := strconv.ParseFloat(q.Get("p"), 64)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "query parameter p must be a number")
		return
	}

	var opts gauge.Options
	if opts.Width, err = optionalInt(q.Get("width")); err != nil {
		jsonErr(w, http.StatusBadRequest, "query parameter width must be an integer")
		return
	}
	if opts.Height, err = optionalInt(q.Get("height")); err != nil {
		jsonErr(w, http.StatusBadRequest, "query parameter height must be an integer")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := gauge.New(p, opts).WriteSVG(w); err != nil {
		slog.Debug("api: write gauge failed", "err", err)
	}
}

// --- helpers ----------------------------------------------------------------

// jsonResp encodes v before committing the status, so an unencodable value
// becomes a 500 instead of an empty success.
func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("api: encode response failed", "err", err)
		code = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(append(body, '\n')) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// optionalInt parses s, treating the empty string as zero.
func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
