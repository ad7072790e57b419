package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/storage"
)

const sampleJSON = `{
  "title": "Photosynthesis",
  "nodes": [
    {"id": 1, "label": "Light reactions", "children": [{"id": "a", "label": "ATP"}]},
    {"id": 2, "label": "Calvin cycle", "color": "#FFE66D"},
    {"id": 3, "label": "Limiting factors", "level": 1}
  ]
}`

type fixture struct {
	srv   *httptest.Server
	store *storage.MemoryStore
	reg   *prometheus.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := log.New(io.Discard)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	prom := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(prom)
	observability.SetCacheHooks(prom)
	t.Cleanup(observability.Reset)

	store := storage.NewMemoryStore()
	s := New(Config{}, pipeline.NewRunner(fc, nil, logger), store, logger, reg)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, store: store, reg: reg}
}

func (f *fixture) do(t *testing.T, method, path, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decode[map[string]string](t, resp); got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestLayout(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/layout?width=1000&height=800", "application/json", sampleJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", resp.Header.Get("X-Cache"))
	}
	model := decode[radial.Model](t, resp)
	if model.Center != (radial.Point{X: 500, Y: 400}) {
		t.Errorf("Center = %+v", model.Center)
	}
	if len(model.Primary) != 3 || len(model.Secondary) != 1 {
		t.Errorf("counts = %d/%d", len(model.Primary), len(model.Secondary))
	}
	if model.Primary[0].ID != "1" {
		t.Errorf("numeric id decoded as %q, want \"1\"", model.Primary[0].ID)
	}

	again := f.do(t, http.MethodPost, "/api/layout?width=1000&height=800", "application/json", sampleJSON)
	if again.Header.Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", again.Header.Get("X-Cache"))
	}
}

func TestLayoutErrors(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{"malformed json", "", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"negative width", "?width=-1", sampleJSON, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"non-numeric width", "?width=wide", sampleJSON, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"zero width", "?width=0", sampleJSON, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"zero height", "?height=0", sampleJSON, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad viz", "?viz=treemap", sampleJSON, http.StatusBadRequest, "INVALID_VIZ_TYPE"},
		{"duplicate ids", "", `{"title":"t","nodes":[{"id":1,"label":"a"},{"id":"1","label":"b"}]}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/api/layout"+tt.query, "application/json", tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorBody](t, resp)
			if string(body.Error.Code) != tt.code {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg&style=simple&theme=day", "image/svg+xml", "<svg"},
		{"?format=json", "application/json", "{"},
		{"?format=dot&viz=nodelink", "text/vnd.graphviz", "graph G {"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/api/render"+tt.query, "application/json", sampleJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			data, _ := io.ReadAll(resp.Body)
			if !strings.HasPrefix(string(data), tt.prefix) {
				t.Errorf("body starts with %q, want %q", string(data[:min(len(data), 20)]), tt.prefix)
			}
		})
	}

	resp := f.do(t, http.MethodPost, "/api/render?format=gif", "application/json", sampleJSON)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("gif status = %d, want 400", resp.StatusCode)
	}
}

func TestOutline(t *testing.T) {
	f := newFixture(t)
	text := "Plants convert light into chemical energy. Chlorophyll absorbs red and blue light. Oxygen is released as a byproduct."

	for _, tc := range []struct {
		name, contentType, body string
	}{
		{"raw", "text/plain", text},
		{"form", "application/x-www-form-urlencoded", url.Values{"text": {text}}.Encode()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/api/outline", tc.contentType, tc.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			m := decode[mindmap.MindMap](t, resp)
			if len(m.Nodes) != 3 || m.Nodes[0].ID != "node_1" {
				t.Errorf("outline = %+v", m)
			}
		})
	}

	resp := f.do(t, http.MethodPost, "/api/outline", "text/plain", "   ")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty text status = %d, want 400", resp.StatusCode)
	}
}

func TestMaps(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/maps", "application/json", sampleJSON)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	id := decode[map[string]string](t, resp)["id"]
	if id == "" || f.store.Len() != 1 {
		t.Fatalf("id = %q, stored = %d", id, f.store.Len())
	}

	resp = f.do(t, http.MethodGet, "/api/maps/"+id, "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	if m := decode[mindmap.MindMap](t, resp); m.Title != "Photosynthesis" || len(m.Nodes) != 3 {
		t.Errorf("stored map = %+v", m)
	}

	resp = f.do(t, http.MethodGet, "/api/maps/"+id+"/layout", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("layout status = %d", resp.StatusCode)
	}
	if model := decode[radial.Model](t, resp); len(model.Connectors) != 4 {
		t.Errorf("connectors = %d, want 4", len(model.Connectors))
	}

	resp = f.do(t, http.MethodGet, "/api/maps/"+id+"/render?format=svg", "", "")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("render status = %d, type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp = f.do(t, http.MethodPut, "/api/maps/custom-id", "application/json", `{"title":"","nodes":[]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodGet, "/api/maps/custom-id", "", "")
	if m := decode[mindmap.MindMap](t, resp); m.Title != mindmap.DefaultTitle {
		t.Errorf("stored maps are normalized, title = %q", m.Title)
	}

	resp = f.do(t, http.MethodDelete, "/api/maps/"+id, "", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodGet, "/api/maps/"+id, "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted map status = %d, want 404", resp.StatusCode)
	}
	if body := decode[errorBody](t, resp); body.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %s", body.Error.Code)
	}

	resp = f.do(t, http.MethodPut, "/api/maps/bad.id", "application/json", sampleJSON)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", resp.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/render", "application/json", sampleJSON)

	resp := f.do(t, http.MethodGet, "/metrics", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	for _, name := range []string{"mindmap_layouts_total", "mindmap_renders_total"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("metrics missing %s", name)
		}
	}
}

func TestCORS(t *testing.T) {
	f := newFixture(t)
	req, _ := http.NewRequest(http.MethodOptions, f.srv.URL+"/api/layout", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/maps/missing", "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
