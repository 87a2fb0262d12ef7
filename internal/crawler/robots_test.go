package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRobotsEnforcer(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	allowAll := NewRobotsEnforcer(false, "test-agent", time.Second, logger)
	if !allowAll.Allowed(ctx, "https://example.com/whatever") {
		t.Fatal("allow-all policy should permit URLs")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprintln(w, "User-agent: *\nDisallow: /blocked")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	enforcer := NewRobotsEnforcer(true, "test-agent", time.Second, logger)
	if !enforcer.Allowed(ctx, srv.URL+"/allowed") {
		t.Fatal("expected allowed path to pass robots")
	}
	if enforcer.Allowed(ctx, srv.URL+"/blocked") {
		t.Fatal("expected blocked path to be denied")
	}
}

func TestRobotsEnforcerFetchesOncePerHost(t *testing.T) {
	var robotsHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			fmt.Fprintln(w, "User-agent: *\nDisallow: /private")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	enforcer := NewRobotsEnforcer(true, "test-agent", time.Second, zap.NewNop())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		enforcer.Allowed(ctx, fmt.Sprintf("%s/page-%d", srv.URL, i))
	}
	if got := robotsHits.Load(); got != 1 {
		t.Fatalf("robots.txt fetched %d times, want 1", got)
	}
}

func TestRobotsEnforcerFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	addr := srv.URL
	srv.Close() // robots fetch will fail with a connection error

	enforcer := NewRobotsEnforcer(true, "test-agent", time.Second, zap.NewNop())
	if !enforcer.Allowed(context.Background(), addr+"/anything") {
		t.Fatal("unavailable robots.txt should allow all")
	}
}
