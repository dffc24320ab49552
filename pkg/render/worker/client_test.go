package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/cabledraw/pkg/cache"
	"github.com/matzehuels/cabledraw/pkg/dsl/dsltest"
	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/render"
)

var fastBackoff = cache.Backoff{Attempts: 3, Delay: time.Millisecond}

func testRequest() render.Request {
	return render.Request{
		DSL:            dsltest.Map(dsltest.RibbonAssembly("RB-8", 8, 400, nil)),
		TemplatePackID: "basic-a3",
		Format:         "svg",
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:5002", false},
		{"https://renderer.internal/", false},
		{"", true},
		{"ftp://renderer", true},
	}
	for _, tt := range tests {
		_, err := NewClient(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewClient(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}

	c, _ := NewClient("https://renderer.internal/")
	if c.BaseURL() != "https://renderer.internal" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", c.BaseURL())
	}
}

func TestClientRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/render" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req render.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.TemplatePackID != "basic-a3" || req.DSL == nil || req.DSL.Meta.AssemblyID != "RB-8" {
			t.Errorf("unexpected body %+v", req)
		}
		json.NewEncoder(w).Encode(Response{
			SVG: "<svg/>",
			Manifest: render.Manifest{
				RendererVersion: "1.2.3",
				TemplatePackID:  req.TemplatePackID,
				RendererKind:    "svg2d",
				SchemaHash:      req.DSL.Meta.SchemaHash,
			},
		})
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Render(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(res.SVG) != "<svg/>" {
		t.Errorf("SVG = %q, want <svg/>", res.SVG)
	}
	if res.Manifest.RendererVersion != "1.2.3" {
		t.Errorf("RendererVersion = %q, want 1.2.3", res.Manifest.RendererVersion)
	}
}

func TestClientRenderRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Response{SVG: "<svg/>"})
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, WithBackoff(fastBackoff))
	if _, err := c.Render(context.Background(), testRequest()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClientRenderFailures(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  errors.Code
		wantCalls int32
	}{
		{
			name: "persistent 5xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantCode:  errors.ErrCodeUpstream,
			wantCalls: 3,
		},
		{
			name: "bad request is not retried",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":"INVALID_SCHEMA","kind":"bad_request","message":"oal must be positive"}}`))
			},
			wantCode:  errors.ErrCodeUpstream,
			wantCalls: 1,
		},
		{
			name: "empty svg",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"svg":"","manifest":{}}`))
			},
			wantCode:  errors.ErrCodeUpstream,
			wantCalls: 1,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			wantCode:  errors.ErrCodeUpstream,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer server.Close()

			c, _ := NewClient(server.URL, WithBackoff(fastBackoff))
			_, err := c.Render(context.Background(), testRequest())
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Render() error = %v, want code %s", err, tt.wantCode)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestClientRenderTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, _ := NewClient(server.URL, WithBackoff(cache.Backoff{Attempts: 1}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Render(ctx, testRequest())
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Render() error = %v, want TIMEOUT", err)
	}
}

func TestClientRenderNilDSL(t *testing.T) {
	c, _ := NewClient("http://localhost:1")
	if _, err := c.Render(context.Background(), render.Request{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render() error = %v, want INVALID_INPUT", err)
	}
}

func TestClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(Health{OK: true, Version: "1.0.0", Uptime: 12.5})
	}))
	defer server.Close()

	c, _ := NewClient(server.URL)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !h.OK || h.Version != "1.0.0" {
		t.Errorf("Health() = %+v", h)
	}
}
