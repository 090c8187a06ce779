package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

func limitedRouter(limit rate.Limit, burst int) *mux.Router {
	r := mux.NewRouter()
	r.Use(NewRateLimiter(limit, burst).Middleware())
	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet, http.MethodOptions)
	return r
}

func ping(r *mux.Router, remoteAddr string, header http.Header) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	r := limitedRouter(rate.Limit(1), 3)
	for i := 0; i < 3; i++ {
		if code := ping(r, "10.0.0.1:1234", nil); code != http.StatusOK {
			t.Fatalf("request %d rejected with %d", i, code)
		}
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	r := limitedRouter(rate.Limit(0), 2)
	ping(r, "10.0.0.1:1234", nil)
	ping(r, "10.0.0.1:1234", nil)
	if code := ping(r, "10.0.0.1:1234", nil); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	r := limitedRouter(rate.Limit(0), 1)
	if code := ping(r, "10.0.0.1:1234", nil); code != http.StatusOK {
		t.Fatalf("first client rejected with %d", code)
	}
	ping(r, "10.0.0.1:1234", nil)
	if code := ping(r, "10.0.0.2:1234", nil); code != http.StatusOK {
		t.Fatalf("second client rejected with %d", code)
	}
}

func TestRateLimiterUsesForwardedFor(t *testing.T) {
	r := limitedRouter(rate.Limit(0), 1)
	hdr := http.Header{"X-Forwarded-For": []string{"203.0.113.9, 10.0.0.1"}}
	if code := ping(r, "127.0.0.1:1", hdr); code != http.StatusOK {
		t.Fatalf("first request rejected with %d", code)
	}
	// Same forwarded client behind a different proxy socket shares the bucket.
	if code := ping(r, "127.0.0.1:2", hdr); code != http.StatusTooManyRequests {
		t.Fatalf("expected shared bucket rejection, got %d", code)
	}
}

func TestRateLimiterPassesPreflight(t *testing.T) {
	r := limitedRouter(rate.Limit(0), 0)
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code == http.StatusTooManyRequests {
		t.Fatal("preflight should bypass the limiter")
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "192.168.1.5:40000"
	if got := clientIP(req); got != "192.168.1.5" {
		t.Fatalf("clientIP = %q", got)
	}
}
