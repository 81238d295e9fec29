package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2.2.1", "2.2.0", 1},
		{"2.10.0", "2.9.9", 1},
		{"2.2.0", "2.2.0", 0},
		{"2.2.0", "2.2.1", -1},
		{"3", "2.99.99", 1},
		{"2.2", "2.2.0", 0},
		{"2.2.0.1", "2.2", 1},
		{"v2.3.0", "2.2.9", 1},
		{"2.2.0-beta", "2.2.0", -1},
		{"2.2.0", "2.2.0-beta", 1},
		{"2.2.0-beta", "2.2.0-alpha", 1},
		{"2.2.0-rc.2", "2.2.0-rc.1", 1},
		{"2.2.0-beta", "2.2.0-1", -1},
		{"dev", "2.2.0", -1},
		{"", "1", -1},
		{"", "", 0},
		{" 2.2.1\n", "2.2.1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestNewer(t *testing.T) {
	if !Newer("2.2.0", "2.2.1") {
		t.Error("Newer(2.2.0, 2.2.1) = false")
	}
	if Newer("2.2.0", "2.2.0") {
		t.Error("Newer(2.2.0, 2.2.0) = true")
	}
	if Newer("2.10.0", "2.9.9") {
		t.Error("Newer(2.10.0, 2.9.9) = true")
	}
}

type fakeSource struct {
	version string
	err     error
	delay   time.Duration
}

func (f fakeSource) Latest(ctx context.Context) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.version, f.err
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		src       Source
		wantVer   string
		wantNewer bool
	}{
		{"newer", fakeSource{version: "2.3.0"}, "2.3.0", true},
		{"same", fakeSource{version: "2.2.0"}, "", false},
		{"older", fakeSource{version: "2.1.9"}, "", false},
		{"error", fakeSource{err: errors.New("dns failure")}, "", false},
		{"nil source", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Check(ctx, tt.src, "2.2.0", time.Second)
			if v != tt.wantVer || ok != tt.wantNewer {
				t.Errorf("Check() = (%q, %v), want (%q, %v)", v, ok, tt.wantVer, tt.wantNewer)
			}
		})
	}
}

func TestCheckTimeout(t *testing.T) {
	start := time.Now()
	v, ok := Check(context.Background(), fakeSource{version: "9.0.0", delay: time.Second}, "2.2.0", 20*time.Millisecond)
	if ok || v != "" {
		t.Errorf("Check() = (%q, %v), want no notice on timeout", v, ok)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Check() took %v, want it bounded by the timeout", elapsed)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/version.txt":
			w.Write([]byte("2.3.0\n"))
		case "/empty":
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	v, err := (&HTTPSource{URL: srv.URL + "/version.txt", Client: srv.Client()}).Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if v != "2.3.0" {
		t.Errorf("Latest() = %q, want 2.3.0", v)
	}

	if _, err := (&HTTPSource{URL: srv.URL + "/missing"}).Latest(ctx); err == nil {
		t.Error("Latest() on 404 succeeded")
	}
	if _, err := (&HTTPSource{URL: srv.URL + "/empty"}).Latest(ctx); err == nil {
		t.Error("Latest() on empty body succeeded")
	}

	got, ok := Check(ctx, &HTTPSource{URL: srv.URL + "/version.txt"}, "2.2.0", time.Second)
	if !ok || got != "2.3.0" {
		t.Errorf("Check() = (%q, %v), want (2.3.0, true)", got, ok)
	}
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, ok := Check(context.Background(), &HTTPSource{URL: url}, "2.2.0", time.Second); ok {
		t.Error("Check() against a closed server reported a newer version")
	}
}

func TestNewHTTPSource(t *testing.T) {
	if got := NewHTTPSource().URL; got != DefaultURL {
		t.Errorf("URL = %q, want %q", got, DefaultURL)
	}
}
