package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/httputil"
)

func newTestClient(t *testing.T, srv *httptest.Server, headers map[string]string) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	client := NewClient(c, "test", time.Hour, headers)
	if srv != nil {
		client.SetHTTPClient(srv.Client())
	}
	return client
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)
	if client.cache == nil {
		t.Error("nil backend should be replaced by NullCache")
	}
	if client.http == nil {
		t.Error("http client is nil")
	}
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.Header.Get("X-Default") != "yes" {
			t.Error("default header not sent")
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	var resp map[string]string
	if err := newTestClient(t, srv, map[string]string{"X-Default": "yes"}).Get(context.Background(), srv.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q", resp["status"])
	}
}

func TestClientPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		data, _ := io.ReadAll(f)
		json.NewEncoder(w).Encode(map[string]string{
			"text": r.FormValue("text"),
			"file": hdr.Filename + ":" + string(data),
		})
	}))
	defer srv.Close()

	var resp map[string]string
	err := newTestClient(t, srv, nil).PostForm(context.Background(), srv.URL,
		map[string]string{"text": "hello"},
		&FormFile{Field: "file", Name: "notes.txt", Contents: strings.NewReader("body")},
		&resp)
	if err != nil {
		t.Fatalf("PostForm() error: %v", err)
	}
	if resp["text"] != "hello" || resp["file"] != "notes.txt:body" {
		t.Errorf("resp = %v", resp)
	}
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	var resp map[string]string
	err := newTestClient(t, srv, nil).Get(context.Background(), srv.URL, &resp)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		body      string
		wantCode  errors.Code
		retryable bool
		contains  string
	}{
		{name: "200", code: 200},
		{name: "201", code: 201},
		{name: "400 detail", code: 400, body: `{"detail":"Please provide either a file or text"}`, wantCode: errors.ErrCodeInvalidInput, contains: "Please provide"},
		{name: "404", code: 404, wantCode: errors.ErrCodeNotFound},
		{name: "429", code: 429, wantCode: errors.ErrCodeRateLimited, retryable: true},
		{name: "500 detail", code: 500, body: `{"detail":"Error generating mind map: boom"}`, wantCode: errors.ErrCodeNetwork, retryable: true, contains: "boom"},
		{name: "503", code: 503, wantCode: errors.ErrCodeNetwork, retryable: true},
		{name: "403", code: 403, wantCode: errors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.code,
				Header:     http.Header{},
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}
			err := checkStatus(resp)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("checkStatus(%d) = %v, want nil", tt.code, err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v (err %v)", got, tt.wantCode, err)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("retryable = %v, want %v", !tt.retryable, tt.retryable)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestClientCached(t *testing.T) {
	client := newTestClient(t, nil, nil)
	ctx := context.Background()

	fetches := 0
	fetch := func(v *string) func() error {
		return func() error {
			fetches++
			*v = "fetched"
			return nil
		}
	}

	var first string
	if err := client.Cached(ctx, "k", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second string
	if err := client.Cached(ctx, "k", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 1 || second != "fetched" {
		t.Errorf("fetches = %d, second = %q; want 1, fetched", fetches, second)
	}

	var third string
	if err := client.Cached(ctx, "k", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 2 {
		t.Errorf("refresh should fetch again, fetches = %d", fetches)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := newTestClient(t, nil, nil)
	var v string
	err := client.Cached(context.Background(), "k", false, &v, func() error {
		return errors.New(errors.ErrCodeNotFound, "gone")
	})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
