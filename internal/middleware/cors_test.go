package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORSHandler(t *testing.T) {
	handler := CORSHandler([]string{"https://roomly.app"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/spaces", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://roomly.app")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://roomly.app" {
		t.Errorf("allow-origin = %q", got)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); strings.Contains(methods, "PATCH") {
		t.Errorf("PATCH should not be advertised, got %q", methods)
	}

	rec = preflight("https://evil.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow-origin %q for unlisted origin", got)
	}
}
