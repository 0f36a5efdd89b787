package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResp_UnencodableValue(t *testing.T) {
	rr := httptest.NewRecorder()
	jsonResp(rr, http.StatusOK, map[string]float64{"probability": math.NaN()})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (body: %q)", err, rr.Body.String())
	}
	if resp.Error == "" {
		t.Error("expected an error message in the body")
	}
}

func TestJSONResp_WritesBody(t *testing.T) {
	rr := httptest.NewRecorder()
	jsonResp(rr, http.StatusCreated, HealthResponse{Status: "ok"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rr.Code)
	}
	if got := rr.Body.String(); got != "{\"status\":\"ok\"}\n" {
		t.Errorf("body: got %q", got)
	}
}
