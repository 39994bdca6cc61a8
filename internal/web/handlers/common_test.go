package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, 200, map[string]string{"key": "value"})

	assertStatusCode(t, recorder, 200)
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result map[string]string
	parseJSONResponse(t, recorder, &result)
	if result["key"] != "value" {
		t.Errorf("unexpected body: %v", result)
	}
}

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, 400, "something went wrong")

	assertStatusCode(t, recorder, 400)
	assertJSONError(t, recorder, "something went wrong")
}

func TestHealthCheck(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)

	HealthCheck(recorder, req)

	assertStatusCode(t, recorder, 200)

	var result map[string]string
	parseJSONResponse(t, recorder, &result)
	if result["status"] != "ok" {
		t.Errorf("expected status ok, got %s", result["status"])
	}
}

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"clean.jpg", "clean.jpg"},
		{"evil\nfake log line", "evilfake log line"},
		{"evil\r\ninjection", "evilinjection"},
	}

	for _, tc := range tests {
		if got := sanitizeForLog(tc.input); got != tc.expected {
			t.Errorf("sanitizeForLog(%q) = %q; want %q", tc.input, got, tc.expected)
		}
	}
}
